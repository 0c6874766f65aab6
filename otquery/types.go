package otquery

import "golang.org/x/image/font/sfnt"

func sfntUnits(v int16) sfnt.Units { return sfnt.Units(v) }

// MetricsSource tells which font data vertical metrics have been taken from.
type MetricsSource uint8

const (
	SourceNone  MetricsSource = iota // no usable metrics at all
	SourceHHea                       // table 'hhea'
	SourceWin                        // OS/2 usWinAscent/usWinDescent
	SourceTypo                       // OS/2 sTypoAscender/sTypoDescender
	SourceBBox                       // head bounding box
)

func (src MetricsSource) String() string {
	switch src {
	case SourceHHea:
		return "hhea"
	case SourceWin:
		return "win"
	case SourceTypo:
		return "typo"
	case SourceBBox:
		return "bbox"
	}
	return "none"
}

// FontMetricsInfo contains vertical metric information for a font, in font units.
// Descender is negative for metrics extending below the baseline.
type FontMetricsInfo struct {
	UnitsPerEm sfnt.Units    // design units per em
	Ascender   sfnt.Units    // ascender above the baseline
	Descender  sfnt.Units    // descender, usually negative
	LineGap    sfnt.Units    // typographic line gap
	Height     sfnt.Units    // baseline-to-baseline distance
	MaxAdvance sfnt.Units    // maximum advance width value from 'hhea'
	Source     MetricsSource // where ascender and descender come from
}

// GlyphMetricsInfo contains all metric information for a glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units  // advance width
	VAdvance sfnt.Units  // advance height, 0 if the font has no vertical metrics
	LSB, RSB sfnt.Units  // side bearings
	BBox     BoundingBox // bounding box
}

// BoundingBox describes the bounding box of a glyph.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// Empty reports whether this box has zero area.
func (bbox BoundingBox) Empty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}
