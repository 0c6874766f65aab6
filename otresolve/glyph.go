package otresolve

import (
	"fmt"

	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otoutline"
	"golang.org/x/image/math/fixed"
)

// Shear factors (16.16) for synthetic italics.
const (
	ShearTrueType   = 0x05700 // matches GDI, about tan(18.77°)
	ShearPostScript = 0x02d24 // tan(10°)
)

// Decorations for GlyphOutline.
const (
	DecoUnderline     = otoutline.DecoUnderline
	DecoStrikethrough = otoutline.DecoStrikethrough
	DecoRotate        = otoutline.DecoRotate
)

func (f *Font) resolved(i int) (resolvedFace, error) {
	if i < 0 || i >= len(f.faces) {
		return resolvedFace{}, fmt.Errorf("no face %d in font %q", i, f.desc.Family)
	}
	return f.faces[i], nil
}

// SetSize sets all faces of the font to size pixels. Faces added to the
// chain later are set to the same size.
func (f *Font) SetSize(size float64) {
	f.size = size
	for _, rf := range f.faces {
		rf.face.SetSize(size)
	}
}

// AscDesc returns the ascender and descender of face i at the current size,
// in 26.6 pixels. Both values are positive for common fonts.
func (f *Font) AscDesc(i int) (asc, desc int32) {
	rf, err := f.resolved(i)
	if err != nil {
		return 0, 0
	}
	m, yScale := rf.face.Metrics(), rf.face.Size().YScale
	asc = int32(otoutline.MulFix(int64(m.Ascender), yScale))
	desc = int32(otoutline.MulFix(-int64(m.Descender), yScale))
	return
}

// LoadGlyph loads a glyph of face i at the current size. If the face lacks
// the requested style, the outline is slanted for an italic strength above
// 55 and emboldened for a weight more than 150 above the face's weight.
// Advances are not changed by synthetic styling.
func (f *Font) LoadGlyph(i int, glyph ot.GlyphIndex, hinting otface.Hinting) (*otoutline.Glyph, error) {
	rf, err := f.resolved(i)
	if err != nil {
		return nil, err
	}
	g, err := rf.face.LoadGlyph(glyph, hinting)
	if err != nil {
		tracer().Errorf("error loading glyph, index %d", glyph)
		return nil, err
	}
	if !rf.class.Italic && f.desc.Italic > 55 {
		shear := int64(ShearTrueType)
		if rf.face.IsPostScript() {
			shear = ShearPostScript
		}
		g.Outline = otoutline.Italicize(g.Outline, shear)
	}
	if !rf.class.Bold && f.desc.Bold > rf.class.Weight+150 {
		upem := int64(rf.face.Font().UnitsPerEm())
		strength := otoutline.MulFix(upem, rf.face.Size().YScale) / 64
		g.Outline = otoutline.Embolden(g.Outline, strength)
	}
	return g, nil
}

// GlyphOutline converts a glyph loaded from face i into an outline with
// decorations, see otoutline.Extract.
func (f *Font) GlyphOutline(i int, g *otoutline.Glyph, flags otoutline.Deco) (otoutline.Outline, fixed.Int26_6, error) {
	rf, err := f.resolved(i)
	if err != nil {
		return otoutline.Outline{}, 0, err
	}
	return otoutline.Extract(g, rf.face.Font(), rf.face.Size().YScale, flags)
}
