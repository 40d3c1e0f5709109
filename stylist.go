package stylist

import (
	"fmt"

	"github.com/npillmayer/stylist/ast"
	"github.com/npillmayer/stylist/cache"
)

var defaultCache = cache.New()

// Parse parses a sheet, using a process-wide cache. Equal texts yield equal
// sheets and are parsed only once. Parse is safe for concurrent use.
//
// Errors are of type *parser.ParseError.
func Parse(text string) (ast.Sheet, error) {
	return defaultCache.Parse(text)
}

// MustParse is like Parse, but panics on errors. It is intended for sheets
// given as literals in a program's source code.
func MustParse(text string) ast.Sheet {
	sheet, err := Parse(text)
	if err != nil {
		tracer().Errorf("invalid style sheet: %v", err)
		panic(fmt.Sprintf("stylist: invalid style sheet: %v", err))
	}
	return sheet
}

// NewCache creates a cache independent from the process-wide one.
func NewCache(opts ...cache.Option) *cache.Cache {
	return cache.New(opts...)
}
