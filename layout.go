package subfont

import (
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/npillmayer/subfont/otquery"
	"golang.org/x/image/math/fixed"
)

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the current name-table reader.
func FamilyName(f *ot.Font) (family, subfamily string) {
	for nameID, value := range otquery.NamesRange(f) {
		switch nameID {
		case ot.NameFamily:
			family = value
		case ot.NameSubfamily:
			subfamily = value
		}
	}
	return
}

// PlacedGlyph is a glyph outline together with its pen position.
type PlacedGlyph struct {
	Code    rune
	Face    int           // position of the face in the fallback chain
	Glyph   ot.GlyphIndex // 0 if no face has a glyph for Code
	Outline otoutline.Outline
	Pen     fixed.Int26_6 // pen position along the baseline
	Advance fixed.Int26_6
}

// Font is the part of a logical font LayoutText needs.
type Font interface {
	GlyphIndex(code rune) (int, ot.GlyphIndex)
	LoadGlyph(i int, glyph ot.GlyphIndex, hinting otface.Hinting) (*otoutline.Glyph, error)
	GlyphOutline(i int, g *otoutline.Glyph, flags otoutline.Deco) (otoutline.Outline, fixed.Int26_6, error)
}

// LayoutText places the glyphs for text one after the other, without any
// shaping. For vertical fonts pass DecoRotate in flags, the pen then
// advances by vertical advances.
//
// Glyphs which fail to load are skipped. The font has to be set to a size
// before.
func (lib *Library) LayoutText(f Font, text string, flags otoutline.Deco) []PlacedGlyph {
	var pen fixed.Int26_6
	glyphs := make([]PlacedGlyph, 0, len(text))
	for _, code := range text {
		i, gid := f.GlyphIndex(code)
		g, err := f.LoadGlyph(i, gid, lib.hinting)
		if err != nil {
			tracer().Infof("skipping %q: %v", code, err)
			continue
		}
		outline, adv, err := f.GlyphOutline(i, g, flags)
		if err != nil {
			tracer().Infof("skipping %q: %v", code, err)
			continue
		}
		glyphs = append(glyphs, PlacedGlyph{
			Code:    code,
			Face:    i,
			Glyph:   gid,
			Outline: outline,
			Pen:     pen,
			Advance: adv,
		})
		pen += adv
	}
	return glyphs
}
