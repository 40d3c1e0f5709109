package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/stylist/ast"
)

// parser holds the source text and a cursor into it. Every grammar function
// either advances the cursor past the text it recognized, or returns an error.
// On error the position of the cursor is unspecified; callers which try
// alternatives save and restore it.
type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// peek returns the next byte, or 0 at the end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) hasPrefix(prefix string) bool {
	return strings.HasPrefix(p.src[p.pos:], prefix)
}

// --- Errors ----------------------------------------------------------------

// failAt creates an error at offset pos.
func (p *parser) failAt(pos int, reason string, args ...interface{}) *ParseError {
	return &ParseError{Offset: pos, Reason: fmt.Sprintf(reason, args...)}
}

// expected creates an error at the current position. An unterminated comment
// at the current position is reported as such, as it hides whatever follows.
func (p *parser) expected(what string) *ParseError {
	switch {
	case p.hasPrefix("/*"):
		return p.failAt(p.pos, "unterminated comment")
	case p.eof():
		return p.failAt(p.pos, "unexpected end of input, expected %s", what)
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return p.failAt(p.pos, "expected %s, found %q", what, r)
}

// expect consumes a single byte c.
func (p *parser) expect(c byte) *ParseError {
	if p.peek() != c {
		return p.expected(fmt.Sprintf("%q", c))
	}
	p.pos++
	return nil
}

// --- Trimmable -------------------------------------------------------------

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// skipSpace skips whitespace, but not comments.
func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// trim skips whitespace and comments. An unterminated comment is left in
// place; whatever grammar rule comes next will fail on it.
func (p *parser) trim() {
	for p.pos < len(p.src) {
		if isSpace(p.src[p.pos]) {
			p.pos++
			continue
		}
		if !p.hasPrefix("/*") {
			return
		}
		if _, err := p.comment(); err != nil {
			return
		}
	}
}

// comment recognizes
//
//     /* … */
//
// Comments do not nest. A '*' inside a comment is fine as long as it is not
// followed by '/'.
func (p *parser) comment() (string, *ParseError) {
	if !p.hasPrefix("/*") {
		return "", p.expected(`"/*"`)
	}
	end := strings.Index(p.src[p.pos+2:], "*/")
	if end < 0 {
		return "", p.failAt(p.pos, "unterminated comment").within("comment")
	}
	start := p.pos
	p.pos += end + 4
	return p.src[start:p.pos], nil
}

// --- Strings ---------------------------------------------------------------

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// quoted recognizes a quoted string, i.e. a quote character, followed by a
// run of characters which are not the quote or a backslash, or a backslash
// followed by exactly one arbitrary character, followed by the closing quote.
// It returns the string including its quotes. Escape sequences are not
// interpreted.
func (p *parser) quoted() (string, *ParseError) {
	if !isQuote(p.peek()) {
		return "", p.expected("quoted string").within("string")
	}
	start := p.pos
	q := p.src[p.pos]
	i := p.pos + 1
	for i < len(p.src) {
		switch p.src[i] {
		case q:
			p.pos = i + 1
			return p.src[start:p.pos], nil
		case '\\':
			if i+1 >= len(p.src) {
				i++
				continue
			}
			_, size := utf8.DecodeRuneInString(p.src[i+1:])
			i += 1 + size
		default:
			i++
		}
	}
	return "", p.failAt(start, "unterminated string").within("string")
}

// --- Identifiers and placeholders ------------------------------------------

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// ident recognizes a bare identifier: letters, digits and '_', where letters
// may be non-ASCII. An identifier must not start with a digit.
func (p *parser) ident() (string, *ParseError) {
	start := p.pos
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if p.eof() || !isIdentStart(r) {
		return "", p.expected("identifier").within("identifier")
	}
	p.pos += size
	for p.pos < len(p.src) {
		r, size = utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentPart(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos], nil
}

// interpolation recognizes a placeholder
//
//     ${ name }
//
// with optional whitespace around the name.
func (p *parser) interpolation() (ast.StringFragment, *ParseError) {
	start := p.pos
	if !p.hasPrefix("${") {
		return ast.StringFragment{}, p.expected(`"${"`).within("interpolation")
	}
	p.pos += 2
	p.skipSpace()
	name, err := p.ident()
	if err != nil {
		return ast.StringFragment{}, err.within("interpolation")
	}
	p.skipSpace()
	if p.peek() != '}' {
		if p.eof() {
			return ast.StringFragment{}, p.failAt(start, "unterminated interpolation").within("interpolation")
		}
		return ast.StringFragment{}, p.expected(`"}" to close interpolation`).within("interpolation")
	}
	p.pos++
	return ast.Interpolation(name), nil
}
