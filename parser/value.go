package parser

import (
	"strings"

	"github.com/npillmayer/stylist/ast"
)

// Terminators for interpolatable text, by context. '$' is not among them:
// a "${" always starts a placeholder, a lone '$' is literal text.
const (
	valueStops    = ";{}"
	selectorStops = ",{};"
	preludeStops  = "{};"
)

// fragments recognizes interpolatable text: a non-empty run of literal text
// and placeholders, up to (not including) a byte of stops. Quoted strings are
// copied as opaque units, so terminators inside strings do not count. Comments
// are dropped, or replaced by a single space where they separate two tokens,
// e.g. "1px/**/2px" becomes "1px 2px". Adjacent literal pieces are merged and trailing whitespace is
// trimmed from the final literal.
//
// what names the construct for error messages.
func (p *parser) fragments(stops string, what string) ([]ast.StringFragment, *ParseError) {
	start := p.pos
	var frags []ast.StringFragment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			frags = append(frags, ast.Literal(lit.String()))
			lit.Reset()
		}
	}
scan:
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case strings.IndexByte(stops, c) >= 0:
			break scan
		case c == '$' && p.hasPrefix("${"):
			flush()
			f, err := p.interpolation()
			if err != nil {
				return nil, err
			}
			frags = append(frags, f)
		case isQuote(c):
			s, err := p.quoted()
			if err != nil {
				return nil, err
			}
			lit.WriteString(s)
		case c == '/' && p.hasPrefix("/*"):
			if _, err := p.comment(); err != nil {
				return nil, err
			}
			if separates(lit.String(), frags) && p.pos < len(p.src) &&
				!isSpace(p.src[p.pos]) && strings.IndexByte(stops, p.src[p.pos]) < 0 {
				lit.WriteByte(' ')
			}
		default:
			lit.WriteByte(c)
			p.pos++
		}
	}
	flush()
	if n := len(frags); n > 0 && !frags[n-1].IsInterpolation() {
		if text := strings.TrimRight(frags[n-1].Text(), " \t\n\r\f"); text == "" {
			frags = frags[:n-1]
		} else {
			frags[n-1] = ast.Literal(text)
		}
	}
	if len(frags) == 0 {
		p.pos = start
		return nil, p.expected(what)
	}
	return frags, nil
}

// separates is true if a comment following the current literal text lit
// would end a token.
func separates(lit string, frags []ast.StringFragment) bool {
	if lit != "" {
		return !isSpace(lit[len(lit)-1])
	}
	return len(frags) > 0 && frags[len(frags)-1].IsInterpolation()
}
