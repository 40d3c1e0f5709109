package parser

import (
	"github.com/npillmayer/stylist/ast"
)

// Parse parses a style sheet. Leading and trailing whitespace and comments
// are insignificant; empty input yields an empty sheet.
//
// Parse either returns a complete sheet or an error of type *ParseError.
// It never returns partial results.
//
// Parse does no caching; see package cache for that.
func Parse(text string) (ast.Sheet, error) {
	p := &parser{src: text}
	contents, err := p.scope(false)
	if err != nil {
		err = err.within("sheet").locate(text)
		tracer().Infof("%s", err)
		return ast.Sheet{}, err
	}
	tracer().Debugf("parsed sheet with %d items from %d bytes", len(contents), len(text))
	return ast.NewSheet(contents...), nil
}
