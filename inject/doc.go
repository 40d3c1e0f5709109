/*
Package inject mounts rendered styles into HTML documents.

A Document wraps an HTML parse tree and implements registry.Sink: every
mounted style becomes a

    <style data-style="class-name">…</style>

element at the end of the document's <head>. Unmounting a style removes its
element again.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package inject

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist.inject'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.inject")
}
