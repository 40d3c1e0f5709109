/*
Package parser turns style sheet source text into an immutable AST.

The grammar is a superset of CSS, tailored to styles attached to components:

	color: red;                       // dangling declarations
	.nested, ${other} {               // blocks, with interpolated selectors
	    width: ${width};
	}
	@media screen and (max-width: 500px) {
	    color: yellow;                // at-rules with a nested scope
	}
	@keyframes move {                 // opaque at-rules, body kept as text
	    from { left: 0; } to { left: 100px; }
	}

Placeholders of the form ${name} may appear anywhere a literal value could
appear: in selectors, in property values and in at-rule preludes. They are
kept in the AST by name; binding them to values is left to clients.

The parser is a hand-written recursive descent parser. At every position of a
scope it tries four alternatives in a fixed order: a run of dangling
declarations, a block, a @media/@supports rule, and an opaque at-rule. The
first alternative to succeed wins. If all of them fail, the failure which got
furthest into the input is reported. There is no error recovery: a parse
either yields a complete Sheet or a single *ParseError.

Parsing is synchronous and does not allocate shared state, so Parse may be
called from many goroutines at once. Callers which parse the same text over
and over should use package cache.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist.parser'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.parser")
}
