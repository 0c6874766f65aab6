package otface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subfont/internal/testfont"
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

// memStream serves font data from memory and counts calls to Close.
func memStream(data []byte, closed *int) FontStream {
	return FontStream{
		Read: func(buf []byte, offset int64) int64 {
			if buf == nil {
				return int64(len(data))
			}
			return int64(copy(buf, data[offset:]))
		},
		Close: func() { *closed++ },
	}
}

func defaultFont() []byte {
	return testfont.Build(testfont.Default()).Bytes()
}

func TestOpenStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	closed := 0
	face, err := OpenStream("mem", memStream(defaultFont(), &closed), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "mem", face.Name())
	assert.Equal(t, 0, face.Index())
	assert.Equal(t, 1, face.NumCharmaps())
	assert.Equal(t, 0, face.Charmap())
	assert.NotNil(t, face.Shaper())
	assert.False(t, face.IsPostScript())
	ps, _ := face.PostScriptName().Unwrap()
	assert.Equal(t, "TestSans-Regular", ps)
	assert.EqualValues(t, 1200, face.Metrics().Height)
	assert.EqualValues(t, 1, face.CharIndex('A'))
	assert.EqualValues(t, 0, face.CharIndex('Z'))
	face.Close()
	face.Close()
	assert.Equal(t, 1, closed, "expected close hook to be called exactly once")
	_, err = face.LoadGlyph(1, HintingNone)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenStreamFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	closed := 0
	_, err := OpenStream("garbage", memStream([]byte("not a font at all"), &closed), 0, "")
	assert.Error(t, err)
	assert.Equal(t, 1, closed)
	closed = 0
	_, err = OpenStream("empty", memStream(nil, &closed), 0, "")
	assert.ErrorIs(t, err, ot.ErrFontSize)
	assert.Equal(t, 1, closed)
	closed = 0
	huge := memStream(nil, &closed)
	huge.Read = func(buf []byte, offset int64) int64 {
		if buf != nil {
			t.Fatal("data of an oversized stream must not be read")
		}
		return ot.MaxFontSize + 1
	}
	_, err = OpenStream("huge", huge, 0, "")
	assert.ErrorIs(t, err, ot.ErrFontSize)
	assert.Equal(t, 1, closed)
	closed = 0
	_, err = OpenStream("absurd", FontStream{
		Read:  func([]byte, int64) int64 { return 1 << 62 },
		Close: func() { closed++ },
	}, 0, "")
	assert.ErrorIs(t, err, ot.ErrFontSize)
	assert.Equal(t, 1, closed)
	closed = 0
	short := memStream(defaultFont(), &closed)
	read := short.Read
	short.Read = func(buf []byte, offset int64) int64 {
		if buf == nil {
			return read(nil, 0) + 10
		}
		return read(buf, offset)
	}
	_, err = OpenStream("short", short, 0, "")
	assert.Error(t, err)
	assert.Equal(t, 1, closed)
	_, err = OpenStream("unreadable", FontStream{}, 0, "")
	assert.Error(t, err)
}

func TestOpenCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	s1, s2 := testfont.Default(), testfont.Default()
	s2.Names = map[uint16]string{1: "Test Sans", 6: "TestSans-Bold"}
	s2.OS2.WeightClass = 700
	ttc := testfont.Collection(testfont.Build(s1), testfont.Build(s2))
	closed := 0
	face, err := OpenStream("ttc", memStream(ttc, &closed), -1, "TestSans-Bold")
	require.NoError(t, err)
	assert.Equal(t, 1, face.Index())
	assert.EqualValues(t, 700, face.Font().OS2.WeightClass)
	assert.NotNil(t, face.Shaper())
	face.Close()
	assert.Equal(t, 1, closed)
	//
	face, err = OpenStream("ttc", memStream(ttc, &closed), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, face.Index())
	for _, tt := range []struct {
		index  int
		psname string
	}{
		{-1, "TestSans-Italic"},
		{-1, ""},
		{2, ""},
	} {
		closed = 0
		_, err = OpenStream("ttc", memStream(ttc, &closed), tt.index, tt.psname)
		assert.ErrorIs(t, err, ErrFaceNotFound, "index %d, name %q", tt.index, tt.psname)
		assert.Equal(t, 1, closed)
	}
	// a single face is accepted without checking its name
	face, err = OpenStream("single", memStream(defaultFont(), &closed), -1, "Whatever")
	require.NoError(t, err)
	assert.Equal(t, 0, face.Index())
}

func TestOpenFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "test.ttf")
	require.NoError(t, os.WriteFile(path, defaultFont(), 0o644))
	face, err := Open(path, 0, "")
	require.NoError(t, err)
	assert.Equal(t, path, face.Name())
	face.Close()
	_, err = Open(filepath.Join(t.TempDir(), "missing.ttf"), 0, "")
	assert.Error(t, err)
}

func TestCharmaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	spec := testfont.Default()
	spec.CMaps = append(spec.CMaps, testfont.CMap{
		Platform: 1, Encoding: 0, Format: 0, Map: map[uint32]uint16{'a': 2},
	})
	closed := 0
	face, err := OpenStream("cmaps", memStream(testfont.Build(spec).Bytes(), &closed), 0, "")
	require.NoError(t, err)
	assert.Equal(t, 2, face.NumCharmaps())
	assert.Equal(t, 0, face.Charmap(), "expected Microsoft charmap to be selected")
	assert.EqualValues(t, 0, face.CharIndex('a'))
	require.NoError(t, face.SetCharmap(1))
	assert.EqualValues(t, 1, face.SelectedCharmap().PlatformID)
	assert.EqualValues(t, 2, face.CharIndex('a'))
	assert.ErrorIs(t, face.SetCharmap(2), ErrNoCharmap)
	assert.ErrorIs(t, face.SetCharmap(-1), ErrNoCharmap)
	assert.Equal(t, 1, face.Charmap())
}

func TestSetSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	closed := 0
	face, err := OpenStream("mem", memStream(defaultFont(), &closed), 0, "")
	require.NoError(t, err)
	assert.Zero(t, face.Size().YScale)
	face.SetSize(18.75) // 1200/64: one font unit per 26.6 unit
	assert.EqualValues(t, 0x10000, face.Size().YScale)
	assert.EqualValues(t, 1000, face.Size().PPEM)
	face.SetSize(12)
	assert.EqualValues(t, 41943, face.Size().YScale)
	assert.EqualValues(t, 640, face.Size().PPEM)
	assert.Equal(t, 12.0, face.Size().Size)
}

func TestLoadGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	closed := 0
	face, err := OpenStream("mem", memStream(defaultFont(), &closed), 0, "")
	require.NoError(t, err)
	_, err = face.LoadGlyph(1, HintingNone)
	assert.ErrorIs(t, err, ErrNoSize)
	face.SetSize(18.75)
	g, err := face.LoadGlyph(1, HintingNone)
	require.NoError(t, err)
	assert.EqualValues(t, 600, g.Advance)
	assert.EqualValues(t, 1000, g.VertAdvance)
	assert.Equal(t, []otoutline.Vector{{X: 50, Y: 0}, {X: 50, Y: -700}, {X: 550, Y: -700}, {X: 550, Y: 0}},
		g.Outline.Points)
	line := otoutline.SegmentLine
	assert.Equal(t, []byte{line, line, line, line | otoutline.ContourEnd}, g.Outline.Segments)
	assert.Equal(t, otoutline.OrientationTrueType, g.Outline.Orientation())
	//
	g, err = face.LoadGlyph(3, HintingNone)
	require.NoError(t, err)
	assert.True(t, g.Outline.Empty())
	assert.EqualValues(t, 250, g.Advance)
	face.SetSize(12)
	g, err = face.LoadGlyph(3, HintingNone)
	require.NoError(t, err)
	assert.EqualValues(t, 160, g.Advance)
	g, err = face.LoadGlyph(3, HintingNormal)
	require.NoError(t, err)
	assert.EqualValues(t, 192, g.Advance)
	_, err = face.LoadGlyph(99, HintingNone)
	assert.Error(t, err)
}

func TestLoadGlyphShaperOutlines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	closed := 0
	face, err := OpenStream("mem", memStream(defaultFont(), &closed), 0, "")
	require.NoError(t, err)
	face.SetSize(18.75)
	expected, err := face.LoadGlyph(1, HintingNone)
	require.NoError(t, err)
	require.NotNil(t, face.shaper)
	face.outlines = nil
	g, err := face.LoadGlyph(1, HintingNone)
	require.NoError(t, err)
	assert.Equal(t, expected.Outline, g.Outline)
	assert.Equal(t, expected.Advance, g.Advance)
	face.shaper = nil
	_, err = face.LoadGlyph(1, HintingNone)
	assert.ErrorIs(t, err, ErrNoOutlines)
}

func TestVerticalAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	spec := testfont.Default()
	spec.Vertical = true
	spec.Glyphs[1].VAdvance = 900
	closed := 0
	face, err := OpenStream("vert", memStream(testfont.Build(spec).Bytes(), &closed), 0, "")
	require.NoError(t, err)
	face.SetSize(18.75)
	g, err := face.LoadGlyph(1, HintingNone)
	require.NoError(t, err)
	assert.EqualValues(t, 900, g.VertAdvance)
	assert.EqualValues(t, 900, g.HintedVertAdvance)
	for _, h := range []Hinting{HintingLight, HintingNormal, HintingNative} {
		g, err = face.LoadGlyph(1, h)
		require.NoError(t, err)
		assert.EqualValues(t, 900, g.VertAdvance, "%s", h)
		assert.EqualValues(t, 896, g.HintedVertAdvance, "%s: rounded to whole pixels", h)
	}
}

func TestGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.face")
	defer teardown()
	//
	closed := 0
	face, err := OpenStream("goregular", memStream(goregular.TTF, &closed), 0, "")
	require.NoError(t, err)
	defer face.Close()
	assert.NotNil(t, face.Shaper())
	face.SetSize(20)
	gid := face.CharIndex('A')
	require.NotZero(t, gid)
	g, err := face.LoadGlyph(gid, HintingNative)
	require.NoError(t, err)
	assert.False(t, g.Outline.Empty())
	assert.Positive(t, int(g.Advance))
	assert.Zero(t, int(g.Advance)%64, "expected hinted advance to be whole pixels")
}

func TestParseHinting(t *testing.T) {
	for _, h := range []Hinting{HintingNone, HintingLight, HintingNormal, HintingNative} {
		p, err := ParseHinting(h.String())
		assert.NoError(t, err)
		assert.Equal(t, h, p)
	}
	p, err := ParseHinting("LIGHT")
	assert.NoError(t, err)
	assert.Equal(t, HintingLight, p)
	_, err = ParseHinting("full")
	assert.Error(t, err)
}
