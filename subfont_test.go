package subfont

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subfont/internal/testfont"
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/npillmayer/subfont/otresolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T, hinting string) *Library {
	dir := t.TempDir()
	data := testfont.Build(testfont.Default()).Bytes()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testsans.ttf"), data, 0o644))
	lib, err := NewLibrary(testconfig.Conf{
		"fontdirs":     dir,
		"system-fonts": false,
		"hinting":      hinting,
	})
	require.NoError(t, err)
	t.Cleanup(lib.Close)
	return lib
}

func TestLibraryFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont")
	defer teardown()
	//
	lib := testLibrary(t, "light")
	assert.Equal(t, otface.HintingLight, lib.Hinting())
	desc := otresolve.Desc{Family: "Test Sans", Bold: 400}
	f1, err := lib.Font(desc)
	require.NoError(t, err)
	f2, err := lib.Font(desc)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	f3, err := lib.Font(otresolve.Desc{Family: "Test Sans", Bold: 700})
	require.NoError(t, err)
	assert.NotSame(t, f1, f3)
	f4, err := lib.Font(otresolve.Desc{Family: "Nonexistent"})
	require.NoError(t, err, "expected unknown family to fall back to any face")
	assert.Equal(t, "testsans.ttf", filepath.Base(f4.Face(0).Name()))
	lib.Close()
	_, err = lib.Font(desc)
	assert.ErrorIs(t, err, ErrLibraryClosed)
}

func TestLibraryHintingConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont")
	defer teardown()
	//
	_, err := NewLibrary(testconfig.Conf{"system-fonts": false, "hinting": "extreme"})
	assert.Error(t, err)
	lib, err := NewLibrary(testconfig.Conf{"system-fonts": false})
	require.NoError(t, err)
	defer lib.Close()
	assert.Equal(t, otface.HintingNone, lib.Hinting())
	_, err = lib.Font(otresolve.Desc{Family: "Test Sans"})
	assert.ErrorIs(t, err, otresolve.ErrNoFace)
}

func TestLibraryMemoryFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont")
	defer teardown()
	//
	lib, err := NewLibrary(testconfig.Conf{"system-fonts": false})
	require.NoError(t, err)
	defer lib.Close()
	spec := testfont.Default()
	spec.Names = map[uint16]string{1: "Attached", 6: "Attached-Regular"}
	require.NoError(t, lib.AddFont("attached.ttf", testfont.Build(spec).Bytes()))
	f, err := lib.Font(otresolve.Desc{Family: "attached"})
	require.NoError(t, err)
	assert.Equal(t, "attached.ttf", f.Face(0).Name())
}

func TestLayoutText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont")
	defer teardown()
	//
	lib := testLibrary(t, "none")
	f, err := lib.Font(otresolve.Desc{Family: "Test Sans"})
	require.NoError(t, err)
	f.SetSize(18.75)
	glyphs := lib.LayoutText(f, "AB A", 0)
	require.Len(t, glyphs, 4)
	pens := []int{0, 600, 1200, 1450}
	for i, g := range glyphs {
		assert.EqualValues(t, pens[i], g.Pen, "glyph %d", i)
		assert.Equal(t, 0, g.Face)
	}
	assert.EqualValues(t, 2, glyphs[1].Glyph)
	assert.True(t, glyphs[2].Outline.Empty())
	assert.Len(t, glyphs[3].Outline.Points, 4)
	//
	glyphs = lib.LayoutText(f, "A", otoutline.DecoUnderline|otoutline.DecoRotate)
	require.Len(t, glyphs, 1)
	assert.EqualValues(t, 1000, glyphs[0].Advance)
	assert.Len(t, glyphs[0].Outline.Points, 8)
}

func TestFamilyName(t *testing.T) {
	otf, err := ot.Parse(testfont.Build(testfont.Default()).Bytes())
	require.NoError(t, err)
	family, sub := FamilyName(otf)
	assert.Equal(t, "Test Sans", family)
	assert.Equal(t, "Regular", sub)
}
