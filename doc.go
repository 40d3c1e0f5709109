/*
Package stylist parses style sheets written in a superset of CSS.

Sheets may hold declarations outside of any block ("dangling" declarations,
which apply to the element a sheet is attached to), nested @media and
@supports rules, and placeholders of the form ${name} wherever a value, a
selector or an at-rule prelude is expected:

    sheet, err := stylist.Parse(`
        color: ${fg};
        &:hover { color: red; }
        @media print { display: none; }
    `)

Parsing results are immutable trees as defined in package ast. Parse
memoizes results in a process-wide cache, so parsing the same literal over
and over again is cheap. Clients which need control over the lifetime of
cached sheets create caches of their own with NewCache.

Parsed sheets are turned into CSS by package render and attached to
documents through package registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package stylist

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist'.
func tracer() tracing.Trace {
	return tracing.Select("stylist")
}
