/*
Package ast contains the semantic representation of a parsed style sheet.

	Sheet
	└── []ScopeContent
	    ├── Block
	    │   ├── condition: []Selector
	    │   └── []StyleAttribute
	    │       ├── key: string
	    │       └── value: []StringFragment
	    └── Rule
	        ├── condition: []StringFragment
	        └── []RuleContent
	            ├── Block (*)
	            ├── Rule (*)
	            └── Raw

Every node is created once by the parser and never changes afterwards. Fields
are unexported and accessors hand out copies of the underlying slices, so nodes
may be shared between goroutines without any locking. This is what makes it
possible for the parse cache to hand the same Sheet to many callers.

ScopeContent and RuleContent are closed sum types. Clients use a type switch to
dispatch on them:

	switch c := content.(type) {
	case ast.Block:
	    …
	case ast.Rule:
	    …
	}

StringFragment is matched the same way as other option types of this module:

	var s string
	switch m := fragment.Match(); m {
	case m.Literal(&s):
	    …
	case m.Interpolation(&s):
	    …
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist.ast'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.ast")
}
