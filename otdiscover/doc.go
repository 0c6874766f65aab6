/*
Package otdiscover finds font faces for logical fonts.

A `Provider` knows a set of font faces and answers queries by family name.
`SystemProvider` indexes font files from configured directories, from the
system's font folders and from memory. `Selector` sits on top of a provider
and implements `otresolve.Selector`: for a font description and a code point
it picks the best matching face which has a glyph for the code point,
consulting family substitutions and a fallback family if necessary.

Configuration keys read by `NewSystemProvider`:

	fontdirs          list of font directories, separated by the OS path list separator
	system-fonts      index the system's fonts (default true)
	substitutions     generic family substitutions, e.g. "sans-serif=Arial;serif=Georgia"
	fallback-family   family used if nothing else has a glyph (default "Arial")

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otdiscover

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.discover'
func tracer() tracing.Trace {
	return tracing.Select("subfont.discover")
}
