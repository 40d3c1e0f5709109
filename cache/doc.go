/*
Package cache memoizes the results of parsing style sheets.

Sheets are usually written as literals in the source code of a client
program and are parsed over and over again, whenever a component is
rendered. A Cache parses every distinct source text at most once and
hands out the shared, immutable result afterwards:

    c := cache.New()
    sheet, err := c.Parse("color: red;")

Concurrency

A Cache is safe for concurrent use. It holds its lock for the whole of a
lookup, including the parse on a miss. This makes a cache single-flight:
concurrent requests for the same uncached text result in a single parse,
at the cost of serializing parses of different texts.

Failed parses are not remembered; parsing the same faulty text again will
report the error again.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package cache

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist.cache'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.cache")
}
