/*
Package otoutline converts glyph outlines into a portable representation and
decorates them.

An Outline is a sequence of points together with a sequence of segment
descriptors. Every segment descriptor tells how many points the segment
consumes: one for a line, two for a quadratic and three for a cubic spline.
The end point of a segment is the first point of the next one; the last
segment of a contour is flagged with ContourEnd and ends at the first point
of its contour. Coordinates are 26.6 fixed point values with the Y axis
pointing down and magnitudes bounded by OutlineMax.

Besides conversion from golang.org/x/image/font/sfnt segments the package
offers the synthetic styling transforms (Italicize, Embolden) and the
decoration step (Extract), which adds underline and strike-through
rectangles and rotates glyphs for vertical text.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otoutline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.outline'
func tracer() tracing.Trace {
	return tracing.Select("subfont.outline")
}
