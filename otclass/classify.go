package otclass

import (
	"slices"

	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otquery"
)

// Face is a font face with a selected charmap.
type Face interface {
	Font() *ot.Font // parsed tables of the face
	Charmap() int   // position of the selected cmap sub-table, or -1
}

func selectedCharmap(face Face) *ot.CMapSubtable {
	otf, i := face.Font(), face.Charmap()
	if otf == nil || otf.CMap == nil || i < 0 || i >= len(otf.CMap.Subtables) {
		return nil
	}
	return &otf.CMap.Subtables[i]
}

// hasGlyph reports whether the selected charmap maps a code point to a
// glyph, after index magic has been applied.
func hasGlyph(face Face, code rune) bool {
	cm := selectedCharmap(face)
	if cm == nil {
		return false
	}
	c := otcmap.IndexMagic(cm, code)
	return c != 0 && face.Font().CMap.Lookup(face.Charmap(), c) != 0
}

func hasAllGlyphs(face Face, codes ...rune) bool {
	for _, c := range codes {
		if !hasGlyph(face, c) {
			return false
		}
	}
	return true
}

// Classify computes the legacy classification of a face. PostScript-flavoured
// faces with an OS/2 table of version 1 or later take the PostScript path,
// all others the TrueType path.
//
// The PostScript path has no notion of a guessed charset; the first
// supported charset is reported instead.
func Classify(face Face) Classification {
	otf := face.Font()
	style := otquery.StyleFlags(otf)
	c := Classification{
		Panose:   Panose(otf, style),
		CmapType: CmapTypeOf(face),
		Weight:   otquery.Weight(otf),
		Italic:   style.Italic(),
		Bold:     style.Bold(),
	}
	if otf.IsCFF() && hasOS2Version1(otf) {
		c.Charsets = CharsetsPostScript(otf)
		c.Charset = c.Charsets[0]
		c.Pitch = PitchPostScript(otf)
		c.Family = FamilyPostScript(otf)
	} else {
		c.Charset, c.Charsets = CharsetsTrueType(face, c.Panose)
		c.Pitch = PitchTrueType(otf, c.Charset, c.Panose, c.Charsets)
		c.Family = FamilyTrueType(c.Charset, c.Panose)
	}
	tracer().Debugf("classified face: charset=%s, charsets=%v, family=%s, pitch=%s",
		c.Charset, c.Charsets, c.Family, c.Pitch)
	return c
}

func hasOS2Version1(otf *ot.Font) bool {
	return otf.OS2 != nil && otf.OS2.Version > 0
}

// IsCharsetDBCS reports whether a charset is a double-byte character set.
func IsCharsetDBCS(cs Charset) bool {
	return cs == CharsetShiftJIS || cs == CharsetHangul ||
		cs == CharsetChineseBig5 || cs == CharsetGB2312
}

// IsAnyCharsetDBCS reports whether the guessed charset or any of the
// supported charsets is a double-byte character set.
func IsAnyCharsetDBCS(charsets []Charset, guessed Charset) bool {
	return IsCharsetDBCS(guessed) || slices.ContainsFunc(charsets, IsCharsetDBCS)
}

// HasJapaneseSignature detects fonts made for Japanese Windows which do not
// declare code page 932 in OS/2: the selected charmap is a Microsoft
// Shift-JIS table containing the halfwidth katakana A, I, U, E and O.
func HasJapaneseSignature(face Face) bool {
	var cpr1 uint32
	if os2 := face.Font().OS2; os2 != nil {
		cpr1 = os2.CodePageRange1
	}
	cm := selectedCharmap(face)
	return cpr1&FSJISJapan == 0 && cm != nil &&
		cm.PlatformID == ot.PlatformMicrosoft && cm.EncodingID == ot.EncodingMSShiftJIS &&
		hasAllGlyphs(face, halfwidthKatakanaA, halfwidthKatakanaI, halfwidthKatakanaU,
			halfwidthKatakanaE, halfwidthKatakanaO)
}

func isLegacyCJKEncoding(encodingID uint16) bool {
	switch encodingID {
	case ot.EncodingMSShiftJIS, ot.EncodingMSPRC, ot.EncodingMSBig5, ot.EncodingMSWansung:
		return true
	}
	return false
}

// CmapTypeOf classifies the selected charmap of a face.
//
// Microsoft format 4 tables are Unicode unless they carry a legacy CJK
// encoding; format 2 tables with a legacy CJK encoding are high-byte tables.
// Microsoft symbol tables are classified like any other format 4 table, so
// CmapSymbol is never reported for them. A Macintosh Roman format 0 table is
// Mac Roman for 'post' tables of version 2, Windows ANSI otherwise.
func CmapTypeOf(face Face) CmapType {
	cm := selectedCharmap(face)
	if cm == nil {
		return CmapUnknown
	}
	otf := face.Font()
	cmapType := CmapUnknown
	if cm.PlatformID == ot.PlatformMicrosoft {
		legacy := isLegacyCJKEncoding(cm.EncodingID)
		switch {
		case cm.Format == 4 && legacy:
			cmapType = CmapNotUnicode
		case cm.Format == 4:
			cmapType = CmapUnicode
		case cm.Format == 2 && legacy:
			cmapType = CmapHighByte
		}
		if cmapType == CmapUnknown {
			return cmapType
		}
	}
	if cm.PlatformID == ot.PlatformMacintosh && cm.EncodingID == ot.EncodingMacRoman && cm.Format == 0 {
		if otf.Post != nil && otf.Post.Format == 0x20000 {
			cmapType = CmapMacRoman
		} else {
			cmapType = CmapWinANSI
		}
	}
	return cmapType
}

// Panose returns the PANOSE classification of a face. Faces without an OS/2
// table get a synthesized one: text and display family, bold or book weight
// from the style flags, monospaced or any proportion from table 'post'.
func Panose(otf *ot.Font, style otquery.Style) [10]byte {
	var panose [10]byte
	if otf.OS2 != nil {
		return otf.OS2.Panose
	}
	panose[PanFamilyType] = PanFamilyTextDisplay
	panose[PanWeight] = PanWeightBook
	if style.Bold() {
		panose[PanWeight] = PanWeightBold
	}
	panose[PanProportion] = PanAny
	if otf.Post != nil && otf.Post.IsFixedPitch != 0 {
		panose[PanProportion] = PanProportionMonospace
	}
	return panose
}
