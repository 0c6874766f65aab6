package otclass

import "fmt"

// Charset is a legacy Windows character set code.
type Charset uint8

const (
	CharsetANSI        Charset = 0
	CharsetDefault     Charset = 1
	CharsetSymbol      Charset = 2
	CharsetMac         Charset = 77
	CharsetShiftJIS    Charset = 128
	CharsetHangul      Charset = 129
	CharsetJohab       Charset = 130
	CharsetGB2312      Charset = 134
	CharsetChineseBig5 Charset = 136
	CharsetGreek       Charset = 161
	CharsetTurkish     Charset = 162
	CharsetVietnamese  Charset = 163
	CharsetHebrew      Charset = 177
	CharsetArabic      Charset = 178
	CharsetBaltic      Charset = 186
	CharsetRussian     Charset = 204
	CharsetThai        Charset = 222
	CharsetEastEurope  Charset = 238
	CharsetFEOEM       Charset = 254 // undocumented, far-east OEM
	CharsetOEM         Charset = 255
)

var charsetNames = map[Charset]string{
	CharsetANSI: "ANSI", CharsetDefault: "DEFAULT", CharsetSymbol: "SYMBOL",
	CharsetMac: "MAC", CharsetShiftJIS: "SHIFTJIS", CharsetHangul: "HANGUL",
	CharsetJohab: "JOHAB", CharsetGB2312: "GB2312", CharsetChineseBig5: "CHINESEBIG5",
	CharsetGreek: "GREEK", CharsetTurkish: "TURKISH", CharsetVietnamese: "VIETNAMESE",
	CharsetHebrew: "HEBREW", CharsetArabic: "ARABIC", CharsetBaltic: "BALTIC",
	CharsetRussian: "RUSSIAN", CharsetThai: "THAI", CharsetEastEurope: "EASTEUROPE",
	CharsetFEOEM: "FEOEM", CharsetOEM: "OEM",
}

func (cs Charset) String() string {
	if s, ok := charsetNames[cs]; ok {
		return s
	}
	return fmt.Sprintf("CHARSET(%d)", uint8(cs))
}

// Family is a GDI font family class, stored in the upper nibble.
type Family uint8

const (
	FamilyDontCare   Family = 0 << 4
	FamilyRoman      Family = 1 << 4
	FamilySwiss      Family = 2 << 4
	FamilyModern     Family = 3 << 4
	FamilyScript     Family = 4 << 4
	FamilyDecorative Family = 5 << 4
)

func (f Family) String() string {
	switch f {
	case FamilyDontCare:
		return "DONTCARE"
	case FamilyRoman:
		return "ROMAN"
	case FamilySwiss:
		return "SWISS"
	case FamilyModern:
		return "MODERN"
	case FamilyScript:
		return "SCRIPT"
	case FamilyDecorative:
		return "DECORATIVE"
	}
	return fmt.Sprintf("FAMILY(%#x)", uint8(f))
}

// Pitch is a GDI pitch class.
type Pitch uint8

const (
	PitchDefault Pitch = iota
	PitchFixed
	PitchVariable
)

func (p Pitch) String() string {
	return [...]string{"DEFAULT", "FIXED", "VARIABLE", "INVALID"}[min(int(p), 3)]
}

// CmapType classifies the selected charmap of a face.
type CmapType uint8

const (
	CmapUnknown CmapType = iota
	CmapUnicode
	CmapNotUnicode
	CmapHighByte
	CmapSymbol
	CmapMacRoman
	CmapWinANSI
)

func (t CmapType) String() string {
	return [...]string{"unknown", "unicode", "not-unicode", "high-byte", "symbol",
		"mac-roman", "win-ansi", "invalid"}[min(int(t), 7)]
}

// Bits of OS/2 ulCodePageRange1.
const (
	FSLatin1      uint32 = 1 << 0
	FSLatin2      uint32 = 1 << 1
	FSCyrillic    uint32 = 1 << 2
	FSGreek       uint32 = 1 << 3
	FSTurkish     uint32 = 1 << 4
	FSHebrew      uint32 = 1 << 5
	FSArabic      uint32 = 1 << 6
	FSBaltic      uint32 = 1 << 7
	FSVietnamese  uint32 = 1 << 8
	FSThai        uint32 = 1 << 16
	FSJISJapan    uint32 = 1 << 17
	FSChineseSimp uint32 = 1 << 18
	FSWansung     uint32 = 1 << 19
	FSChineseTrad uint32 = 1 << 20
	FSJohab       uint32 = 1 << 21
	FSFEOEM       uint32 = 1 << 26
	FSMac         uint32 = 1 << 29
	FSSymbol      uint32 = 1 << 31
)

// Indices into a PANOSE classification.
const (
	PanFamilyType = iota
	PanSerifStyle
	PanWeight
	PanProportion
	PanContrast
	PanStrokeVariation
	PanArmStyle
	PanLetterform
	PanMidline
	PanXHeight
)

// PANOSE values used by the classification.
const (
	PanAny                 byte = 0
	PanNoFit               byte = 1
	PanFamilyTextDisplay   byte = 2
	PanFamilyScript        byte = 3
	PanFamilyDecorative    byte = 4
	PanFamilyPictorial     byte = 5
	PanWeightBook          byte = 5
	PanWeightBold          byte = 8
	PanProportionMonospace byte = 9
)

// Probe code points.
const (
	halfwidthKatakanaA      = 0xff71
	halfwidthKatakanaI      = 0xff72
	halfwidthKatakanaU      = 0xff73
	halfwidthKatakanaE      = 0xff74
	halfwidthKatakanaO      = 0xff75
	cjkIdeograph61D4        = 0x61d4
	cjkIdeograph9EE2        = 0x9ee2
	cjkIdeograph9F79        = 0x9f79
	cjkIdeograph9F98        = 0x9f98
	hangulSyllableGA        = 0xac00
	hangulSyllableHA        = 0xd558
	privateUseE000          = 0xe000
	increment               = 0x2206
	greekCapitalOmega       = 0x03a9
	greekSmallUpsilonDialyt = 0x03cb
	latinCapitalIDotAbove   = 0x0130
	hebrewAlef              = 0x05d0
	cyrillicSmallIO         = 0x0451
	cyrillicCapitalYA       = 0x042f
	latinSmallNCaron        = 0x0148
	latinCapitalCCaron      = 0x010c
	latinSmallUOgonek       = 0x0173
	mediumShade             = 0x2592
)

// Classification is the legacy classification of a face.
type Classification struct {
	Charset  Charset   // guessed charset
	Charsets []Charset // supported charsets, never empty
	Family   Family
	Pitch    Pitch
	Panose   [10]byte
	CmapType CmapType
	Weight   int
	Italic   bool
	Bold     bool
}
