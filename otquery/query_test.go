package otquery

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subfont/internal/testfont"
	"github.com/npillmayer/subfont/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type QueryTestEnviron struct {
	suite.Suite
	otf *ot.Font
}

// listen for 'go test' command --> run test methods
func TestQueryFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.query")
	defer teardown()
	suite.Run(t, new(QueryTestEnviron))
}

// run once, before test suite methods
func (env *QueryTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("subfont.ot").SetTraceLevel(tracing.LevelError)
	env.otf = env.build(testfont.Default())
}

func (env *QueryTestEnviron) build(spec testfont.Spec) *ot.Font {
	otf, err := ot.Parse(testfont.Build(spec).Bytes())
	env.Require().NoError(err)
	return otf
}

// --- Tests -----------------------------------------------------------------

func (env *QueryTestEnviron) TestNormalizedMetricsWin() {
	m := NormalizedMetrics(env.otf)
	env.Equal(SourceWin, m.Source)
	env.Equal(sfnt.Units(900), m.Ascender)
	env.Equal(sfnt.Units(-300), m.Descender)
	env.Equal(sfnt.Units(1200), m.Height)
	env.Equal(sfnt.Units(1000), m.UnitsPerEm)
}

func (env *QueryTestEnviron) TestNormalizedMetricsFallbacks() {
	spec := testfont.Default()
	spec.OS2.WinAscent, spec.OS2.WinDescent = 0, 0
	m := NormalizedMetrics(env.build(spec))
	env.Equal(SourceTypo, m.Source, "zero win metrics must be rejected")
	env.Equal(sfnt.Units(750), m.Ascender)
	env.Equal(sfnt.Units(-250), m.Descender)
	env.Equal(m.Ascender-m.Descender, m.Height)
	d := DefaultMetrics(env.build(spec))
	env.Equal(SourceHHea, d.Source)
	env.NotEqual(d.Ascender, m.Ascender, "engine defaults must not leak into normalized metrics")
	env.NotEqual(d.Height, m.Height)
	//
	// signed sum of win metrics is zero
	spec.OS2.WinAscent, spec.OS2.WinDescent = 100, 0xff9c
	m = NormalizedMetrics(env.build(spec))
	env.Equal(SourceTypo, m.Source, "win metrics with signed sum 0 must be rejected")
	//
	spec.OS2.TypoAscender, spec.OS2.TypoDescender = 0, 0
	m = NormalizedMetrics(env.build(spec))
	env.Equal(SourceBBox, m.Source)
	env.Equal(sfnt.Units(800), m.Ascender)
	env.Equal(sfnt.Units(-200), m.Descender)
	env.Equal(sfnt.Units(1000), m.Height)
	//
	spec = testfont.Default()
	spec.OS2 = nil
	m = NormalizedMetrics(env.build(spec))
	env.Equal(SourceBBox, m.Source)
	env.Equal(m.Ascender-m.Descender, m.Height)
}

func (env *QueryTestEnviron) TestDefaultMetrics() {
	m := DefaultMetrics(env.otf)
	env.Equal(SourceHHea, m.Source)
	env.Equal(sfnt.Units(1090), m.Height, "engine height includes the line gap")
	env.Equal(sfnt.Units(600), m.MaxAdvance)
	spec := testfont.Default()
	spec.OS2.FsSelection |= fsUseTypoMetrics
	m = DefaultMetrics(env.build(spec))
	env.Equal(SourceTypo, m.Source)
	env.Equal(sfnt.Units(1000), m.Height)
}

func (env *QueryTestEnviron) TestStyleFlags() {
	env.Equal(Style(0), StyleFlags(env.otf))
	spec := testfont.Default()
	spec.OS2.FsSelection = 0x21
	spec.MacStyle = 0
	s := StyleFlags(env.build(spec))
	env.True(s.Bold() && s.Italic(), "expected bold italic, have %s", s)
	//
	// OS/2 wins over head
	spec.OS2.FsSelection = 0x40
	spec.MacStyle = 3
	env.Equal(Style(0), StyleFlags(env.build(spec)))
	spec.OS2 = nil
	spec.MacStyle = 2
	env.Equal(StyleItalic, StyleFlags(env.build(spec)))
	env.Equal("italic", StyleItalic.String())
}

func (env *QueryTestEnviron) TestStyleFromName() {
	spec := testfont.Default()
	spec.Names[ot.NameSubfamily] = "Bold Oblique"
	otf := env.build(spec)
	env.Equal(StyleItalic|StyleBold, styleFromName(otf))
}

func (env *QueryTestEnviron) TestWeight() {
	tests := []struct {
		class, fsSelection uint16
		weight             int
	}{
		{400, 0x40, 400},
		{0, 0x40, 400},
		{0, 0x20, 700},
		{4, 0, 350},
		{6, 0, 600},
		{9, 0, 900},
		{10, 0, 10},
		{650, 0, 650},
	}
	for _, tt := range tests {
		spec := testfont.Default()
		spec.OS2.WeightClass, spec.OS2.FsSelection = tt.class, tt.fsSelection
		env.Equal(tt.weight, Weight(env.build(spec)), "weight class %d", tt.class)
	}
	spec := testfont.Default()
	spec.OS2 = nil
	spec.MacStyle = 1
	env.Equal(700, Weight(env.build(spec)))
}

func (env *QueryTestEnviron) TestNames() {
	ps, ok := PostScriptName(env.otf).Unwrap()
	env.True(ok)
	env.Equal("TestSans-Regular", ps)
	env.Equal("Test Sans", FamilyName(env.otf))
	env.Equal([]string{"Test Sans Regular"}, FullNames(env.otf))
	spec := testfont.Default()
	spec.Names[ot.NameTypographicFamily] = "Test Family"
	env.Equal([]string{"Test Sans", "Test Family"}, FamilyNames(env.build(spec)))
	spec.Names = nil
	otf := env.build(spec)
	env.False(PostScriptName(otf).IsSome())
	env.Empty(FamilyNames(otf))
	n := 0
	for range NamesRange(otf) {
		n++
	}
	env.Zero(n)
}

func (env *QueryTestEnviron) TestGlyphMetrics() {
	m := GlyphMetrics(env.otf, 1)
	env.Equal(sfnt.Units(600), m.Advance)
	env.Equal(sfnt.Units(50), m.LSB)
	env.Equal(sfnt.Units(50), m.RSB)
	env.Equal(BoundingBox{MinX: 50, MinY: 0, MaxX: 550, MaxY: 700}, m.BBox)
	env.Equal(sfnt.Units(1000), m.VAdvance, "synthesized from typo metrics")
	space := GlyphMetrics(env.otf, 3)
	env.True(space.BBox.Empty())
	env.Zero(space.RSB)
	//
	spec := testfont.Default()
	spec.Vertical = true
	spec.Glyphs[1].VAdvance = 1200
	env.Equal(sfnt.Units(1200), VerticalAdvance(env.build(spec), 1))
}

func (env *QueryTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
	env.Equal(uint16(1000), h.UnitsPerEm)
	env.Equal(int16(1), h.IndexToLocFormat)
	env.Equal(1904, h.Created.Year())
	env.Equal(sfnt.Units(800), h.BBox.MaxY)
}

func (env *QueryTestEnviron) TestGoRegular() {
	otf, err := ot.Parse(goregular.TTF)
	env.Require().NoError(err)
	m := NormalizedMetrics(otf)
	env.NotEqual(SourceNone, m.Source)
	env.Equal(m.Ascender-m.Descender, m.Height)
	env.True(PostScriptName(otf).IsSome())
	env.Equal("Go", FamilyName(otf))
	env.False(StyleFlags(otf).Bold())
}
