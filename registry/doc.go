/*
Package registry keeps track of the styles mounted to a document.

A style is a parsed sheet, with its placeholders resolved, under a class
name of its own. The registry makes sure that every distinct style exists
once per prefix: requesting a style for a sheet which has been requested
before hands out the existing style and its class name.

Styles are identified by a StyleKey, consisting of a class name prefix and
the canonical source text of the resolved sheet. Class names are derived
from keys deterministically, as

    <prefix>-<hash of key>

Rendered CSS is handed to a Sink, which attaches it to a document (see
package inject for a sink working on HTML trees). Unregistering a style
detaches its CSS again.

Configuration

A registry reads the following keys from a schuko.Configuration:

    stylist.prefix   class name prefix, default "stylist"
    stylist.minify   render compact CSS, default false

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

*/
package registry

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'stylist.registry'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.registry")
}
