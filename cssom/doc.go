/*
Package cssom provides a read-only object model for plain CSS.

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Sheets in
the superset syntax of this module are parsed into package ast trees;
once rendered (see package render) they are plain CSS, which clients may
want to inspect: which rules did a style produce, which value does a
property end up with. This package decouples that kind of inspection
from any concrete CSS parser by introducing the interfaces StyleSheet and
Rule. A concrete implementation may be found in sub-package douceuradapter.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'stylist.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.cssom")
}
