package otclass

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subfont/internal/testfont"
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type face struct {
	otf *ot.Font
	cm  int
}

func (f face) Font() *ot.Font { return f.otf }
func (f face) Charmap() int   { return f.cm }

// makeFace builds a test face and selects its charmap like a face would be
// opened.
func makeFace(t *testing.T, spec testfont.Spec) face {
	t.Helper()
	otf, err := ot.Parse(testfont.Build(spec).Bytes())
	require.NoError(t, err)
	return face{otf: otf, cm: otcmap.Select(otf.CMap.Subtables)}
}

func TestIsCharsetDBCS(t *testing.T) {
	for i := 0; i < 256; i++ {
		cs := Charset(i)
		expected := i == 128 || i == 129 || i == 134 || i == 136
		assert.Equal(t, expected, IsCharsetDBCS(cs), "charset %d", i)
	}
	assert.True(t, IsAnyCharsetDBCS([]Charset{CharsetANSI, CharsetGB2312}, CharsetANSI))
	assert.True(t, IsAnyCharsetDBCS(nil, CharsetHangul))
	assert.False(t, IsAnyCharsetDBCS([]Charset{CharsetANSI, CharsetJohab}, CharsetDefault))
}

func TestCharsetsFromCodePages(t *testing.T) {
	all := CharsetsFromCodePages(0xffffffff, false)
	assert.Len(t, all, 16)
	assert.Equal(t, CharsetANSI, all[0])
	assert.Equal(t, CharsetSymbol, all[15])
	ps := CharsetsFromCodePages(0xffffffff, true)
	assert.Len(t, ps, 17)
	assert.Equal(t, CharsetMac, ps[16])
	assert.Equal(t, []Charset{CharsetRussian, CharsetShiftJIS},
		CharsetsFromCodePages(FSCyrillic|FSJISJapan|FSFEOEM, false))
	assert.Empty(t, CharsetsFromCodePages(FSMac, false))
}

func TestClassifyDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	c := Classify(makeFace(t, testfont.Default()))
	assert.Equal(t, CharsetANSI, c.Charset)
	assert.Equal(t, []Charset{CharsetANSI}, c.Charsets)
	assert.Equal(t, PitchVariable, c.Pitch)
	assert.Equal(t, FamilySwiss, c.Family)
	assert.Equal(t, CmapUnicode, c.CmapType)
	assert.Equal(t, 400, c.Weight)
	assert.False(t, c.Bold || c.Italic)
}

// Aligning the guessed charset with the supported charsets is documented
// best-effort behaviour, not verified against GDI.
func TestClassifyCyrillicOnlyBestEffort(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.Version = 2
	spec.OS2.CodePageRange1 = FSCyrillic
	f := makeFace(t, spec)
	assert.Equal(t, CharsetANSI, GuessedCharset(f, spec.OS2.Panose))
	guessed, charsets := CharsetsTrueType(f, spec.OS2.Panose)
	assert.Equal(t, []Charset{CharsetRussian}, charsets)
	assert.Equal(t, CharsetRussian, guessed, "documented best-effort: guessed charset aligns with supported charsets")
	//
	spec.OS2.FsSelection = uint16(CharsetRussian)<<8 | 0x40
	f = makeFace(t, spec)
	assert.Equal(t, CharsetRussian, GuessedCharset(f, spec.OS2.Panose))
}

func TestClassifyJapaneseCodePage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.CodePageRange1 = FSLatin1 | FSJISJapan
	spec.OS2.Panose = [10]byte{2, 11, 6, 9, 7, 2, 5, 8, 2, 4}
	c := Classify(makeFace(t, spec))
	assert.Equal(t, CharsetShiftJIS, c.Charset)
	assert.Equal(t, []Charset{CharsetANSI, CharsetShiftJIS, CharsetFEOEM}, c.Charsets)
	assert.Equal(t, PitchFixed, c.Pitch, "monospaced PANOSE makes DBCS faces fixed pitch")
	assert.Equal(t, FamilyModern, c.Family, "sans-serif Japanese faces are modern")
}

func TestClassifyJapaneseSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.CMaps = []testfont.CMap{{Platform: 3, Encoding: 2, Format: 2, Map: map[uint32]uint16{
		0xb1: 1, 0xb2: 1, 0xb3: 2, 0xb4: 2, 0xb5: 3, 0x41: 1,
	}}}
	f := makeFace(t, spec)
	require.Equal(t, 0, f.cm)
	assert.True(t, HasJapaneseSignature(f))
	assert.Equal(t, CmapHighByte, CmapTypeOf(f))
	guessed, charsets := CharsetsTrueType(f, spec.OS2.Panose)
	assert.Equal(t, CharsetShiftJIS, guessed)
	assert.Equal(t, []Charset{CharsetShiftJIS, CharsetFEOEM}, charsets)
	//
	// declared code page 932 disables the signature
	spec.OS2.CodePageRange1 |= FSJISJapan
	assert.False(t, HasJapaneseSignature(makeFace(t, spec)))
	// a missing katakana disables it as well
	spec.OS2.CodePageRange1 = FSLatin1
	delete(spec.CMaps[0].Map, 0xb5)
	assert.False(t, HasJapaneseSignature(makeFace(t, spec)))
}

func TestClassifySymbolFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.CMaps = []testfont.CMap{{Platform: 3, Encoding: 0, Format: 4, Map: map[uint32]uint16{
		0xf020: 3, 0xf041: 1, 0xf042: 2,
	}}}
	spec.OS2.FsSelection = 0
	spec.OS2.CodePageRange1 = FSSymbol
	spec.OS2.Panose = [10]byte{5, 0, 4, 3, 0, 0, 0, 0, 0, 0}
	spec.OS2.FirstChar, spec.OS2.LastChar = 0xf020, 0xf042
	f := makeFace(t, spec)
	assert.Equal(t, CmapUnicode, CmapTypeOf(f), "symbol tables are not a cmap type of their own")
	assert.True(t, hasGlyph(f, 'A'), "symbol charmaps are indexed at U+F000")
	c := Classify(f)
	assert.Equal(t, CharsetSymbol, c.Charset, "char indices above 0xff make a symbol font")
	assert.Equal(t, []Charset{CharsetSymbol}, c.Charsets)
	assert.Equal(t, FamilyDontCare, c.Family)
}

func TestClassifyPictorialLowCharIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.CMaps = []testfont.CMap{{Platform: 3, Encoding: 0, Format: 4, Map: map[uint32]uint16{
		0xf020: 3, 0xf041: 1, 0xf042: 2,
	}}}
	spec.OS2.FsSelection = 0
	spec.OS2.CodePageRange1 = FSLatin1 | FSSymbol
	spec.OS2.Panose = [10]byte{5, 0, 4, 3, 0, 0, 0, 0, 0, 0}
	spec.OS2.FirstChar, spec.OS2.LastChar = 0x20, 0xff
	f := makeFace(t, spec)
	assert.Equal(t, CmapUnicode, CmapTypeOf(f))
	assert.Equal(t, CharsetANSI, GuessedCharset(f, spec.OS2.Panose))
	guessed, charsets := CharsetsTrueType(f, spec.OS2.Panose)
	assert.Equal(t, CharsetANSI, guessed)
	assert.Equal(t, []Charset{CharsetANSI, CharsetSymbol}, charsets)
}

func TestGuessedCharsetProbes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	gb := map[uint32]uint16{}
	for _, c := range []rune{cjkIdeograph61D4, cjkIdeograph9EE2} {
		mb := otcmap.ConvertToMB(otcmap.EncodingGB2312, c)
		require.NotZero(t, mb)
		gb[mb] = 1
	}
	tests := []struct {
		name     string
		cmap     testfont.CMap
		guessed  Charset
		charsets []Charset
	}{
		{"GB2312 probe", testfont.CMap{Platform: 3, Encoding: 3, Format: 4, Map: gb},
			CharsetGB2312, []Charset{CharsetGB2312, CharsetFEOEM}},
		{"Big5 probe", testfont.CMap{Platform: 3, Encoding: 1, Format: 4,
			Map: map[uint32]uint16{cjkIdeograph9F79: 1, cjkIdeograph9F98: 2}},
			CharsetChineseBig5, []Charset{CharsetChineseBig5, CharsetFEOEM}},
		{"Hangul probe", testfont.CMap{Platform: 3, Encoding: 1, Format: 4,
			Map: map[uint32]uint16{hangulSyllableGA: 1, hangulSyllableHA: 2}},
			CharsetHangul, []Charset{CharsetHangul, CharsetFEOEM}},
		{"Katakana probe", testfont.CMap{Platform: 3, Encoding: 1, Format: 4,
			Map: map[uint32]uint16{0xff71: 1, 0xff72: 1, 0xff73: 1, 0xff74: 1, 0xff75: 1}},
			CharsetShiftJIS, []Charset{CharsetShiftJIS, CharsetFEOEM}},
		{"high-byte Wansung", testfont.CMap{Platform: 3, Encoding: 5, Format: 2,
			Map: map[uint32]uint16{0xb0a1: 1}},
			CharsetHangul, []Charset{CharsetHangul, CharsetFEOEM}},
		{"no probe hits", testfont.CMap{Platform: 3, Encoding: 1, Format: 4,
			Map: map[uint32]uint16{'A': 1}},
			CharsetANSI, []Charset{CharsetANSI}},
	}
	for _, tt := range tests {
		spec := testfont.Default()
		spec.OS2.Version = 0
		spec.CMaps = []testfont.CMap{tt.cmap}
		f := makeFace(t, spec)
		assert.Equal(t, tt.guessed, GuessedCharset(f, spec.OS2.Panose), tt.name)
		guessed, charsets := CharsetsTrueType(f, spec.OS2.Panose)
		assert.Equal(t, tt.guessed, guessed, tt.name)
		assert.Equal(t, tt.charsets, charsets, tt.name)
	}
}

func TestGuessedCharsetHighCharIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.FirstChar, spec.OS2.LastChar = 0x100, 0x200
	f := makeFace(t, spec)
	assert.Equal(t, CharsetSymbol, GuessedCharset(f, spec.OS2.Panose))
	guessed, charsets := CharsetsTrueType(f, spec.OS2.Panose)
	assert.Equal(t, CharsetANSI, guessed)
	assert.Equal(t, []Charset{CharsetANSI}, charsets)
}

func TestCharsetsFromFsSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.Version = 0
	spec.OS2.FsSelection = uint16(CharsetGreek)<<8 | 0x40
	guessed, charsets := CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.Equal(t, CharsetGreek, guessed)
	assert.Equal(t, []Charset{CharsetGreek}, charsets)
	//
	spec.OS2.FsSelection = 0xb240
	guessed, charsets = CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.Equal(t, CharsetArabic, guessed)
	assert.Equal(t, []Charset{CharsetArabic}, charsets)
	//
	spec.OS2.FsSelection = 0xb140
	spec.OS2.FirstChar, spec.OS2.LastChar = 0xf020, 0xf0ff
	guessed, charsets = CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.Equal(t, CharsetHebrew, guessed)
	assert.Equal(t, []Charset{CharsetHebrew}, charsets)
}

func TestCharsetsTrueTypeLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.CodePageRange1 = 0xffffffff
	guessed, charsets := CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.Equal(t, CharsetShiftJIS, guessed)
	assert.Len(t, charsets, MaxCharsets)
	assert.NotContains(t, charsets, CharsetFEOEM)
}

func TestCharsetsFEOEM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.CodePageRange1 = FSLatin1 | FSChineseSimp
	guessed, charsets := CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.Equal(t, CharsetGB2312, guessed)
	assert.Equal(t, []Charset{CharsetANSI, CharsetGB2312, CharsetFEOEM}, charsets)
	//
	// 15 charsets from code pages leave room for FEOEM
	spec.OS2.CodePageRange1 = 0xffffffff &^ FSCyrillic
	guessed, charsets = CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.Equal(t, CharsetShiftJIS, guessed)
	assert.Len(t, charsets, MaxCharsets)
	assert.Equal(t, CharsetFEOEM, charsets[MaxCharsets-1])
	//
	// single-byte faces never get FEOEM
	spec.OS2.CodePageRange1 = FSLatin1 | FSCyrillic
	_, charsets = CharsetsTrueType(makeFace(t, spec), spec.OS2.Panose)
	assert.NotContains(t, charsets, CharsetFEOEM)
}

func TestNoOS2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2 = nil
	spec.Post.FixedPitch = true
	spec.CMaps[0].Map[greekCapitalOmega] = 1
	spec.CMaps[0].Map[cyrillicCapitalYA] = 2
	spec.CMaps[0].Map[mediumShade] = 3
	f := makeFace(t, spec)
	c := Classify(f)
	assert.Equal(t, [10]byte{2, 0, 5, 9, 0, 0, 0, 0, 0, 0}, c.Panose)
	assert.Equal(t, PitchFixed, c.Pitch)
	assert.Equal(t, CharsetANSI, c.Charset)
	assert.Equal(t, []Charset{CharsetANSI, CharsetGreek, CharsetRussian, CharsetOEM}, c.Charsets)
	assert.Equal(t, FamilyModern, c.Family, "monospaced PANOSE maps to modern")
	//
	spec.Post = nil
	spec.MacStyle = 1
	panose := Panose(makeFace(t, spec).otf, otquery.StyleBold)
	assert.Equal(t, PanWeightBold, panose[PanWeight])
	assert.Equal(t, PanAny, panose[PanProportion])
}

func TestCmapTypeMac(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.CMaps = []testfont.CMap{{Platform: 1, Encoding: 0, Format: 0, Map: map[uint32]uint16{'A': 1}}}
	spec.Post.Format = 0x20000
	assert.Equal(t, CmapMacRoman, CmapTypeOf(makeFace(t, spec)))
	spec.Post.Format = 0x30000
	assert.Equal(t, CmapWinANSI, CmapTypeOf(makeFace(t, spec)))
	spec.Post = nil
	assert.Equal(t, CmapWinANSI, CmapTypeOf(makeFace(t, spec)))
	assert.Equal(t, CmapUnknown, CmapTypeOf(face{otf: makeFace(t, spec).otf, cm: -1}))
}

func TestClassifyPostScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.class")
	defer teardown()
	//
	spec := testfont.Default()
	spec.CFF = true
	spec.OS2.CodePageRange1 = FSLatin1 | FSMac
	spec.OS2.Panose = [10]byte{2, 4, 5, 9, 0, 0, 0, 0, 0, 0}
	c := Classify(makeFace(t, spec))
	assert.Equal(t, []Charset{CharsetANSI, CharsetMac}, c.Charsets)
	assert.Equal(t, CharsetANSI, c.Charset)
	assert.Equal(t, PitchFixed, c.Pitch)
	assert.Equal(t, FamilyRoman, c.Family)
	//
	// documented best-effort: an empty code page list reports DEFAULT
	spec.OS2.CodePageRange1 = 0
	spec.OS2.Panose = [10]byte{3}
	c = Classify(makeFace(t, spec))
	assert.Equal(t, []Charset{CharsetDefault}, c.Charsets, "documented best-effort")
	assert.Equal(t, FamilyScript, c.Family)
	assert.Equal(t, PitchVariable, c.Pitch)
	//
	// OS/2 version 0 takes the TrueType path
	spec.OS2.Version = 0
	c = Classify(makeFace(t, spec))
	assert.Equal(t, []Charset{CharsetANSI}, c.Charsets)
}

func TestFamilyTrueType(t *testing.T) {
	tests := []struct {
		charset Charset
		panose  [10]byte
		family  Family
	}{
		{CharsetANSI, [10]byte{4}, FamilyDecorative},
		{CharsetANSI, [10]byte{5}, FamilyDontCare},
		{CharsetANSI, [10]byte{3}, FamilyScript},
		{CharsetANSI, [10]byte{2, 11, 0, 9}, FamilyModern},
		{CharsetANSI, [10]byte{2, 2}, FamilyRoman},
		{CharsetANSI, [10]byte{2, 15}, FamilySwiss},
		{CharsetANSI, [10]byte{2, 16}, FamilyDontCare},
		{CharsetShiftJIS, [10]byte{2, 11}, FamilyModern},
		{CharsetHangul, [10]byte{4, 5}, FamilyRoman},
		{CharsetHangul, [10]byte{2, 0, 0, 9}, FamilyDontCare},
		{CharsetGB2312, [10]byte{2, 11}, FamilySwiss},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.family, FamilyTrueType(tt.charset, tt.panose), "%s %v", tt.charset, tt.panose)
	}
}
