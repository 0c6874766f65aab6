package otoutline

import (
	"fmt"

	"github.com/npillmayer/subfont/ot"
	"golang.org/x/image/math/fixed"
)

// Deco selects the decorations Extract applies to a glyph.
type Deco uint8

const (
	DecoUnderline     Deco = 1 << iota // underline from table 'post'
	DecoStrikethrough                  // strike-through from table 'OS/2'
	DecoRotate                         // rotate by 90 degrees for vertical text
)

// Glyph is a glyph loaded at a face size.
type Glyph struct {
	Index             ot.GlyphIndex
	Outline           Outline
	Advance           fixed.Int26_6 // horizontal advance
	VertAdvance       fixed.Int26_6 // unhinted vertical advance
	HintedVertAdvance fixed.Int26_6 // vertical advance, rounded to pixels if hinted
}

// scaleFix scales font units by a 16.16 factor, rounding half up.
func scaleFix(v int16, yScale int64) int64 {
	return (int64(v)*yScale + 0x8000) >> 16
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Extract converts a loaded glyph into a decorated outline and returns it
// together with the glyph's advance. yScale is the 16.16 scale from font
// units to 26.6 pixels of the face size the glyph was loaded at.
//
// The returned advance is the unhinted vertical advance if flags contain
// DecoRotate. The rotated outline is shifted by the hinted vertical advance.
// Underline and strike-through rectangles are added for glyphs with a
// positive advance only, and they are omitted if they would exceed the
// outline coordinate bounds. Rotation overflow, on the other hand, fails the
// extraction. Rectangles are not rotated and follow the winding of the
// glyph's outline.
func Extract(g *Glyph, otf *ot.Font, yScale int64, flags Deco) (Outline, fixed.Int26_6, error) {
	adv := g.Advance
	if flags&DecoRotate != 0 {
		adv = g.VertAdvance
	}
	var lines [][2]int64
	addLine := func(pos, size int16, name string) {
		p, s := scaleFix(pos, yScale), scaleFix(size, yScale)
		p = -p - s>>1
		if p < -OutlineMax || p+s > OutlineMax {
			tracer().Infof("%s of glyph %d out of bounds, omitted", name, g.Index)
			return
		}
		lines = append(lines, [2]int64{p, p + s})
	}
	if adv > 0 && flags&DecoUnderline != 0 {
		if post := otf.Post; post != nil && post.UnderlinePosition <= 0 && post.UnderlineThickness > 0 {
			addLine(post.UnderlinePosition, post.UnderlineThickness, "underline")
		}
	}
	if adv > 0 && flags&DecoStrikethrough != 0 {
		if os2 := otf.OS2; os2 != nil && os2.StrikeoutPosition >= 0 && os2.StrikeoutSize > 0 {
			addLine(os2.StrikeoutPosition, os2.StrikeoutSize, "strike-through")
		}
	}
	if g.Outline.Empty() && len(lines) == 0 {
		return Outline{}, adv, nil
	}
	out := g.Outline.Clone()
	if flags&DecoRotate != 0 {
		var desc int64
		if otf.OS2 != nil {
			desc = scaleFix(otf.OS2.TypoDescender, yScale)
			if abs64(desc) > 2*OutlineMax {
				return Outline{}, adv, fmt.Errorf("rotating glyph %d, descender: %w", g.Index, ErrOverflow)
			}
		}
		dv := int64(g.HintedVertAdvance) + desc
		if abs64(dv) > 2*OutlineMax {
			return Outline{}, adv, fmt.Errorf("rotating glyph %d, vertical advance: %w", g.Index, ErrOverflow)
		}
		if err := out.Rotate90(Vector{X: int32(dv), Y: int32(-desc)}); err != nil {
			return Outline{}, adv, fmt.Errorf("rotating glyph %d: %w", g.Index, err)
		}
	}
	iy := 1
	if g.Outline.Orientation() == OrientationTrueType {
		iy = 0
	}
	for _, l := range lines {
		out.AddRect(0, int32(l[iy]), int32(adv), int32(l[iy^1]))
	}
	return out, adv, nil
}
