/*
Package otface opens font faces and prepares them for glyph lookup.

A Face bundles everything needed to render glyphs from one member of a font
file: the parsed sfnt tables, an outline loader, a shaping-engine font object,
the selected charmap and normalized vertical metrics. Faces are opened from a
file path or from a FontStream, which lets callers supply font data from
memory or from an embedded attachment.

Face sizes follow "real dimension" semantics: the distance between the
normalized ascender and descender is scaled to the requested pixel size. This
is different from the usual em-based sizing and reproduces the way
Windows-based subtitle tooling sizes text.

Outlines are loaded with golang.org/x/image/font/sfnt. Fonts which this
loader rejects, for example fonts with legacy multi-byte charmaps only, fall
back to the glyph outlines of github.com/go-text/typesetting.

A Face is not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otface

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.face'
func tracer() tracing.Trace {
	return tracing.Select("subfont.face")
}
