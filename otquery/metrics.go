package otquery

import (
	"github.com/npillmayer/subfont/ot"
	"golang.org/x/image/font/sfnt"
)

// fsSelection bit 7: USE_TYPO_METRICS
const fsUseTypoMetrics = 1 << 7

// DefaultMetrics retrieves the vertical metrics a font engine reports for a
// font without any interpretation of legacy platform conventions:
// ascender, descender and line gap from 'hhea', or from the OS/2 typographic
// metrics if the font requests it by setting USE_TYPO_METRICS or if 'hhea'
// carries no values. Height includes the line gap.
func DefaultMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{UnitsPerEm: sfnt.Units(otf.UnitsPerEm())}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascender = sfnt.Units(hhea.Ascender)
		metrics.Descender = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
		metrics.Source = SourceHHea
	}
	if os2 := otf.OS2; os2 != nil {
		hasTypo := os2.TypoAscender != 0 || os2.TypoDescender != 0
		if hasTypo && (os2.FsSelection&fsUseTypoMetrics != 0 || metrics.Source == SourceNone ||
			(metrics.Ascender == 0 && metrics.Descender == 0)) {
			tracer().Debugf("default metrics taken from OS/2 typo values")
			metrics.Ascender = sfnt.Units(os2.TypoAscender)
			metrics.Descender = sfnt.Units(os2.TypoDescender)
			metrics.LineGap = sfnt.Units(os2.TypoLineGap)
			metrics.Source = SourceTypo
		} else if !hasTypo && metrics.Ascender == 0 && metrics.Descender == 0 {
			metrics.Ascender = sfnt.Units(int16(os2.WinAscent))
			metrics.Descender = -sfnt.Units(int16(os2.WinDescent))
			metrics.LineGap = 0
			metrics.Source = SourceWin
		}
	}
	metrics.Height = metrics.Ascender - metrics.Descender + metrics.LineGap
	return metrics
}

// NormalizedMetrics derives ascender, descender and height the way the
// legacy Windows text stack does.
//
// OS/2 usWinAscent and usWinDescent are used if their sum, taking both as
// signed 16-bit values, is non-zero. Fonts in the wild put signed values into
// these unsigned fields, and an all-zero pair marks an unusable table.
// Otherwise the OS/2 typographic ascender and descender are used if they
// differ; as a last resort the bounding box from table 'head' is taken.
//
// Height is always ascender minus descender. The line gap is reported from
// 'hhea' for information only.
func NormalizedMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{UnitsPerEm: sfnt.Units(otf.UnitsPerEm())}
	if hhea := otf.HHea; hhea != nil {
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	os2 := otf.OS2
	switch {
	case os2 != nil && int(int16(os2.WinAscent))+int(int16(os2.WinDescent)) != 0:
		metrics.Ascender = sfnt.Units(int16(os2.WinAscent))
		metrics.Descender = -sfnt.Units(int16(os2.WinDescent))
		metrics.Source = SourceWin
	case os2 != nil && int(os2.TypoAscender)-int(os2.TypoDescender) != 0:
		tracer().Debugf("OS/2 win metrics unusable, taking typo metrics")
		metrics.Ascender = sfnt.Units(os2.TypoAscender)
		metrics.Descender = sfnt.Units(os2.TypoDescender)
		metrics.Source = SourceTypo
	case otf.Head != nil:
		tracer().Debugf("no usable OS/2 metrics, taking bounding box")
		metrics.Ascender = sfnt.Units(otf.Head.YMax)
		metrics.Descender = sfnt.Units(otf.Head.YMin)
		metrics.Source = SourceBBox
	}
	metrics.Height = metrics.Ascender - metrics.Descender
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table hmtx: advance width and left side bearing
	if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
		metrics.Advance = sfnt.Units(aw)
		metrics.LSB = sfnt.Units(lsb)
	}
	metrics.VAdvance = VerticalAdvance(otf, gid)
	//
	// table glyf: bounding box
	if bbox, ok := glyphBBox(otf, gid); ok {
		metrics.BBox = bbox
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined.
	if !metrics.BBox.Empty() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// VerticalAdvance returns the advance height of a glyph in font units.
// Fonts without table 'vmtx' get a synthesized advance, which is the
// distance between typographic ascender and descender of OS/2, or of 'hhea'
// if OS/2 is missing.
func VerticalAdvance(otf *ot.Font, gid ot.GlyphIndex) sfnt.Units {
	if otf.VHea != nil {
		if ah, _, ok := otf.VMtx.VMetrics(gid); ok {
			return sfnt.Units(ah)
		}
	}
	if os2 := otf.OS2; os2 != nil {
		return sfnt.Units(os2.TypoAscender) - sfnt.Units(os2.TypoDescender)
	}
	if hhea := otf.HHea; hhea != nil {
		return sfnt.Units(hhea.Ascender) - sfnt.Units(hhea.Descender)
	}
	return 0
}

// glyphBBox reads the bounding box of a TrueType glyph from tables 'loca'
// and 'glyf'. CFF fonts and empty glyphs report false.
func glyphBBox(otf *ot.Font, gid ot.GlyphIndex) (BoundingBox, bool) {
	glyf, loca := otf.Table(ot.T("glyf")), otf.Table(ot.T("loca"))
	if glyf == nil || loca == nil || otf.Head == nil {
		return BoundingBox{}, false
	}
	l := loca.Binary()
	var start, end int
	if otf.Head.IndexToLocFormat == 0 {
		if 2*int(gid)+4 > len(l) {
			return BoundingBox{}, false
		}
		start = 2 * int(u16(l[2*int(gid):]))
		end = 2 * int(u16(l[2*int(gid)+2:]))
	} else {
		if 4*int(gid)+8 > len(l) {
			return BoundingBox{}, false
		}
		start = int(u32(l[4*int(gid):]))
		end = int(u32(l[4*int(gid)+4:]))
	}
	b := glyf.Binary()
	if end-start < 10 || end > len(b) {
		return BoundingBox{}, false
	}
	b = b[start:]
	return BoundingBox{
		MinX: sfnt.Units(i16(b[2:])),
		MinY: sfnt.Units(i16(b[4:])),
		MaxX: sfnt.Units(i16(b[6:])),
		MaxY: sfnt.Units(i16(b[8:])),
	}, true
}
