/*
Package otresolve resolves code points to glyphs across a chain of font
faces.

A Font stands for a logical font request: a family name, a weight, an
italic strength, a legacy charset and a writing direction. It starts with a
single face and grows a fallback chain of at most MaxFaces faces on demand:
whenever no face of the chain has a glyph for a code point, a Selector is
asked for one more face. Faces are identified by a uid, so a face returned
twice by the selector is not added twice.

Glyphs are loaded with synthetic styling. If the logical font asks for an
italic or bold style the resolved face does not provide, the glyph outline is
slanted or emboldened.

A Font is not safe for concurrent use. Callers sharing fonts between
goroutines have to serialize access, as package subfont does for font
construction.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otresolve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.resolve'
func tracer() tracing.Trace {
	return tracing.Select("subfont.resolve")
}
