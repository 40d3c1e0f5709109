package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError is the single error type of the parser. It reports what was
// expected at which position of the input, together with the grammar rules
// active at the failure point, innermost rule first.
type ParseError struct {
	Offset  int      // byte offset into the source text
	Line    int      // 1-based line of Offset
	Column  int      // 1-based column of Offset, counted in runes
	Reason  string   // human readable explanation, e.g. `expected ":"`
	Context []string // grammar rules, innermost first
	Near    string   // excerpt of the input starting at Offset

	committed bool // failed after the input was unambiguous
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("stylist: ")
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d, column %d: ", e.Line, e.Column)
	} else {
		fmt.Fprintf(&b, "offset %d: ", e.Offset)
	}
	b.WriteString(e.Reason)
	if len(e.Context) > 0 {
		b.WriteString(" (in ")
		b.WriteString(strings.Join(e.Context, " < "))
		b.WriteString(")")
	}
	if e.Near != "" {
		fmt.Fprintf(&b, " near %q", e.Near)
	} else {
		b.WriteString(" at end of input")
	}
	return b.String()
}

// within records that e occurred while parsing grammar rule rule.
func (e *ParseError) within(rule string) *ParseError {
	e.Context = append(e.Context, rule)
	return e
}

const nearLength = 20

// locate fills in line, column and excerpt, given the complete source text.
func (e *ParseError) locate(src string) *ParseError {
	if e.Offset > len(src) {
		e.Offset = len(src)
	}
	e.Line, e.Column = 1, 1
	for _, r := range src[:e.Offset] {
		if r == '\n' {
			e.Line++
			e.Column = 1
		} else {
			e.Column++
		}
	}
	near := src[e.Offset:]
	if utf8.RuneCountInString(near) > nearLength {
		near = string([]rune(near)[:nearLength]) + "…"
	}
	e.Near = near
	return e
}

// deeper selects the error which got further into the input. For ties, a
// committed error wins over an uncommitted one, otherwise the first one wins.
func deeper(a, b *ParseError) *ParseError {
	if a == nil {
		return b
	}
	if b == nil || a.Offset > b.Offset {
		return a
	}
	if a.Offset == b.Offset && (a.committed || !b.committed) {
		return a
	}
	return b
}
