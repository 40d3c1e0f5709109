package cache

import (
	"sync"

	"github.com/npillmayer/stylist/ast"
	"github.com/npillmayer/stylist/parser"
)

// ParseFunc is the signature of a sheet parser. parser.Parse is the default.
type ParseFunc func(text string) (ast.Sheet, error)

// Cache maps source texts to parsed sheets. The zero value is not usable,
// create caches with New.
type Cache struct {
	props
	mx     sync.Mutex
	sheets map[string]ast.Sheet
	stats  Stats
}

// Stats counts the outcomes of calls to Cache.Parse.
type Stats struct {
	Hits     int // requests answered from the cache
	Misses   int // requests which resulted in a successful parse
	Failures int // requests which resulted in a parse error
}

type props struct {
	parse ParseFunc
}

// Option is a type to help initializing caches at creation time.
type Option struct {
	config func(props) props
}

// WithParser is an option to replace the parser used on cache misses.
// A nil parser leaves the default in place.
//
// Use it like this:
//
//     c := cache.New(cache.WithParser(myParse))
//
func WithParser(parse ParseFunc) Option {
	conf := func(p props) props {
		if parse != nil {
			p.parse = parse
		}
		return p
	}
	return Option{config: conf}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		props:  props{parse: parser.Parse},
		sheets: make(map[string]ast.Sheet),
	}
	for _, option := range opts {
		c.props = option.config(c.props)
	}
	return c
}

// --- API -------------------------------------------------------------------

// Parse returns the sheet for text, parsing it if it has not been seen
// before. Errors of the parser are returned unchanged and are not cached.
//
// Callers requesting equal texts receive equal sheets, in fact the very same
// immutable sheet.
func (c *Cache) Parse(text string) (ast.Sheet, error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if sheet, ok := c.sheets[text]; ok {
		c.stats.Hits++
		return sheet, nil
	}
	sheet, err := c.parse(text)
	if err != nil {
		c.stats.Failures++
		tracer().Debugf("not caching sheet: %v", err)
		return ast.Sheet{}, err
	}
	c.stats.Misses++
	c.sheets[text] = sheet
	tracer().Debugf("cached sheet #%d with %d items", len(c.sheets), sheet.Len())
	return sheet, nil
}

// Contains checks if a sheet for text is present, without parsing it.
func (c *Cache) Contains(text string) bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	_, ok := c.sheets[text]
	return ok
}

// Len returns the number of cached sheets.
func (c *Cache) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return len(c.sheets)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.stats
}

// Clear drops all cached sheets and resets the statistics. Sheets handed out
// before remain valid.
func (c *Cache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.sheets = make(map[string]ast.Sheet)
	c.stats = Stats{}
}
