/*
Package render turns parsed sheets into plain CSS.

Rendering has two steps. First, placeholders are replaced by the values
bound to their names (see Resolve). Second, the sheet is scoped and written
out:

- dangling declarations are wrapped into a rule for the scoping class,
- selectors containing '&' have it replaced by the scoping class, all
  other selectors are prefixed by it as a descendant combinator,
- @media and @supports rules are written with their contents scoped the
  same way,
- opaque at-rules, e.g. @keyframes, are written unchanged.

Without a class name, sheets are written unscoped. Rendering an unscoped
sheet which contains no placeholders yields text which parses back to an
equal sheet.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist.render'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.render")
}
