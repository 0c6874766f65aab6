package otclass

import (
	"slices"

	"github.com/npillmayer/subfont/ot"
)

// codePageCharsets maps bits of OS/2 ulCodePageRange1 to charsets, in the
// order GDI enumerates them.
var codePageCharsets = []struct {
	bit     uint32
	charset Charset
}{
	{FSLatin1, CharsetANSI},
	{FSLatin2, CharsetEastEurope},
	{FSCyrillic, CharsetRussian},
	{FSGreek, CharsetGreek},
	{FSTurkish, CharsetTurkish},
	{FSHebrew, CharsetHebrew},
	{FSArabic, CharsetArabic},
	{FSBaltic, CharsetBaltic},
	{FSVietnamese, CharsetVietnamese},
	{FSThai, CharsetThai},
	{FSJISJapan, CharsetShiftJIS},
	{FSChineseSimp, CharsetGB2312},
	{FSWansung, CharsetHangul},
	{FSChineseTrad, CharsetChineseBig5},
	{FSJohab, CharsetJohab},
	{FSSymbol, CharsetSymbol},
}

// CharsetsFromCodePages lists the charsets for the bits set in
// ulCodePageRange1. The Macintosh bit is honoured for PostScript faces only.
func CharsetsFromCodePages(cpr1 uint32, isPostScript bool) []Charset {
	var charsets []Charset
	for _, cp := range codePageCharsets {
		if cpr1&cp.bit != 0 {
			charsets = append(charsets, cp.charset)
		}
	}
	if isPostScript && cpr1&FSMac != 0 {
		charsets = append(charsets, CharsetMac)
	}
	return charsets
}

// CharsetsPostScript returns the supported charsets of a PostScript face,
// taken from OS/2 code page ranges. A face without any recognized code page
// gets the default charset.
func CharsetsPostScript(otf *ot.Font) []Charset {
	var charsets []Charset
	if otf.OS2 != nil {
		charsets = CharsetsFromCodePages(otf.OS2.CodePageRange1, true)
	}
	if len(charsets) == 0 {
		charsets = append(charsets, CharsetDefault)
	}
	return charsets
}

// charsetOfEncoding maps the encoding ID of a Microsoft legacy charmap to a
// charset.
func charsetOfEncoding(encodingID uint16, dflt Charset) Charset {
	switch encodingID {
	case ot.EncodingMSShiftJIS:
		return CharsetShiftJIS
	case ot.EncodingMSPRC:
		return CharsetGB2312
	case ot.EncodingMSBig5:
		return CharsetChineseBig5
	case ot.EncodingMSWansung:
		return CharsetHangul
	}
	return dflt
}

// GuessedCharset guesses the primary charset of a face.
//
// Faces with OS/2 code page ranges and without a Japanese signature are
// classified by the CJK code page bits (Japanese, Traditional Chinese,
// Simplified Chinese, Wansung), else by the charset stored in the high
// byte of fsSelection by old fonts. All other faces are probed: high-byte
// charmaps by their encoding, then characters typical for Japanese,
// Simplified Chinese, Traditional Chinese and Korean fonts, then the private
// use area in legacy CJK charmaps.
//
// Faces with a Microsoft charmap and OS/2 first and last char indices both
// above 255 are symbol fonts, regardless of everything else.
func GuessedCharset(face Face, panose [10]byte) Charset {
	otf := face.Font()
	os2 := otf.OS2
	cm := selectedCharmap(face)
	cmapType := CmapTypeOf(face)
	var fromFsSelection Charset
	if os2 != nil {
		fromFsSelection = Charset(os2.FsSelection >> 8)
	}
	fallback := func() Charset {
		if fromFsSelection == CharsetANSI && panose[PanFamilyType] == PanFamilyPictorial &&
			cmapType == CmapSymbol {
			return CharsetSymbol
		}
		return fromFsSelection
	}
	guessed := CharsetANSI
	if os2 != nil && os2.Version > 0 && os2.CodePageRange1 != 0 && !HasJapaneseSignature(face) {
		cpr1 := os2.CodePageRange1
		switch {
		case cpr1&FSJISJapan != 0:
			guessed = CharsetShiftJIS
		case cpr1&FSChineseTrad != 0:
			guessed = CharsetChineseBig5
		case cpr1&FSChineseSimp != 0:
			guessed = CharsetGB2312
		case cpr1&FSWansung != 0:
			guessed = CharsetHangul
		default:
			guessed = fallback()
		}
	} else {
		switch {
		case cmapType == CmapHighByte:
			guessed = charsetOfEncoding(cm.EncodingID, CharsetANSI)
		case hasAllGlyphs(face, halfwidthKatakanaA, halfwidthKatakanaI, halfwidthKatakanaU,
			halfwidthKatakanaE, halfwidthKatakanaO):
			guessed = CharsetShiftJIS
		case hasAllGlyphs(face, cjkIdeograph61D4, cjkIdeograph9EE2):
			guessed = CharsetGB2312
		case hasAllGlyphs(face, cjkIdeograph9F79, cjkIdeograph9F98):
			guessed = CharsetChineseBig5
		case hasAllGlyphs(face, hangulSyllableGA, hangulSyllableHA):
			guessed = CharsetHangul
		case hasGlyph(face, privateUseE000) && cm.PlatformID == ot.PlatformMicrosoft &&
			cm.EncodingID >= ot.EncodingMSShiftJIS && cm.EncodingID <= ot.EncodingMSJohab:
			// GDI consults the system code page here; the charmap is the
			// best approximation
			guessed = charsetOfEncoding(cm.EncodingID, CharsetJohab)
		default:
			guessed = fallback()
		}
	}
	if os2 != nil && cm != nil && cm.PlatformID == ot.PlatformMicrosoft &&
		os2.FirstCharIndex > 0xff && os2.LastCharIndex > 0xff {
		guessed = CharsetSymbol
	}
	return guessed
}

// MaxCharsets is the maximum number of charsets CharsetsTrueType reports.
const MaxCharsets = 16

// CharsetsTrueType returns the guessed charset and the supported charsets of
// a TrueType face. The guessed charset may differ from GuessedCharset, as
// it is aligned with the supported charsets.
//
// Double-byte faces with an OS/2 table of version 0 or with a Japanese
// signature support just their guessed charset. Faces with a newer OS/2
// table are classified by code page ranges. Other faces are probed for
// characters of various scripts, unless they are symbol fonts.
// Double-byte faces additionally support the far-east OEM charset.
func CharsetsTrueType(face Face, panose [10]byte) (Charset, []Charset) {
	otf := face.Font()
	guessed := GuessedCharset(face, panose)
	isDBCS := IsCharsetDBCS(guessed)
	os2 := otf.OS2
	var firstChar, fsSelection uint16
	if os2 != nil {
		firstChar, fsSelection = os2.FirstCharIndex, os2.FsSelection
	}
	var charsets []Charset
	switch {
	case isDBCS && os2 != nil && (os2.Version == 0 || HasJapaneseSignature(face)):
		charsets = append(charsets, guessed)
	case os2 != nil && os2.Version > 0:
		charsets = CharsetsFromCodePages(os2.CodePageRange1, false)
		if !slices.Contains(charsets, guessed) {
			// best effort, GDI behaviour not verified
			if len(charsets) > 0 {
				guessed = charsets[0]
			} else {
				guessed = CharsetDefault
			}
		}
	case panose[PanFamilyType] != PanFamilyPictorial && firstChar < 0x100:
		if fsSelection&0xff00 != 0 {
			switch cs := Charset(fsSelection >> 8); cs {
			case 0xb2, 0xb3, 0xb4:
				guessed = CharsetArabic
			default:
				charsets = append(charsets, cs)
			}
		} else {
			charsets = append(charsets, probeCharsets(face)...)
		}
	case firstChar >= 0xf000 && fsSelection&0xff00 != 0:
		switch Charset(fsSelection >> 8) {
		case 0xb1, 0xb5:
			guessed = CharsetHebrew
			charsets = append(charsets, guessed)
		case 0xb2, 0xb3, 0xb4:
			guessed = CharsetArabic
			charsets = append(charsets, guessed)
		}
	default:
		charsets = append(charsets, guessed)
	}
	if isDBCS && len(charsets) < MaxCharsets {
		charsets = append(charsets, CharsetFEOEM)
	}
	if len(charsets) == 0 {
		// best effort, GDI behaviour not verified
		charsets = append(charsets, guessed)
	}
	return guessed, charsets
}

// probeCharsets tests a face for characters typical for a script. ANSI is
// always supported.
func probeCharsets(face Face) []Charset {
	charsets := []Charset{CharsetANSI}
	probes := []struct {
		charset Charset
		codes   []rune
	}{
		{CharsetMac, []rune{increment}},
		{CharsetGreek, []rune{greekCapitalOmega, greekSmallUpsilonDialyt}},
		{CharsetTurkish, []rune{latinCapitalIDotAbove}},
		{CharsetHebrew, []rune{hebrewAlef}},
		{CharsetRussian, []rune{cyrillicSmallIO, cyrillicCapitalYA}},
		{CharsetEastEurope, []rune{latinSmallNCaron, latinCapitalCCaron}},
		{CharsetBaltic, []rune{latinSmallUOgonek}},
		{CharsetOEM, []rune{mediumShade}},
	}
	for _, p := range probes {
		if slices.ContainsFunc(p.codes, func(c rune) bool { return hasGlyph(face, c) }) {
			charsets = append(charsets, p.charset)
		}
	}
	return charsets
}
