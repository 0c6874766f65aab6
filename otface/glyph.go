package otface

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-text/typesetting/font"
	gotext "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/npillmayer/subfont/otquery"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Hinting selects how glyphs are fitted to the pixel grid. Outlines are
// never hinted; hinting affects advances only.
type Hinting uint8

const (
	HintingNone   Hinting = iota // unhinted
	HintingLight                 // vertical hinting only, advances stay fractional
	HintingNormal                // advances rounded to whole pixels
	HintingNative                // like HintingNormal
)

var hintingNames = []string{"none", "light", "normal", "native"}

func (h Hinting) String() string {
	if int(h) < len(hintingNames) {
		return hintingNames[h]
	}
	return fmt.Sprintf("Hinting(%d)", h)
}

// ParseHinting converts a hinting name (none, light, normal or native) to a
// Hinting mode.
func ParseHinting(s string) (Hinting, error) {
	for i, name := range hintingNames {
		if strings.EqualFold(s, name) {
			return Hinting(i), nil
		}
	}
	return HintingNone, fmt.Errorf("unknown hinting mode %q", s)
}

func (h Hinting) fontHinting() xfont.Hinting {
	switch h {
	case HintingLight:
		return xfont.HintingVertical
	case HintingNormal, HintingNative:
		return xfont.HintingFull
	}
	return xfont.HintingNone
}

// LoadGlyph loads glyph gid at the current face size. The outline is in
// 26.6 pixel units with the y-axis pointing down.
func (f *Face) LoadGlyph(gid ot.GlyphIndex, hinting Hinting) (*otoutline.Glyph, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.size.YScale == 0 {
		return nil, ErrNoSize
	}
	g := &otoutline.Glyph{Index: gid}
	var err error
	switch {
	case f.outlines != nil:
		err = f.loadOutline(g, hinting)
	case f.shaper != nil:
		err = f.loadShaperOutline(g, hinting)
	default:
		err = ErrNoOutlines
	}
	if err != nil {
		return nil, fmt.Errorf("glyph %d of font %q: %w", gid, f.name, err)
	}
	vadv := otquery.VerticalAdvance(f.otf, gid)
	g.VertAdvance = fixed.Int26_6(otoutline.MulFix(int64(vadv), f.size.YScale))
	g.HintedVertAdvance = g.VertAdvance
	if hinting != HintingNone {
		g.HintedVertAdvance = (g.VertAdvance + 32) &^ 63
	}
	return g, nil
}

func (f *Face) loadOutline(g *otoutline.Glyph, hinting Hinting) error {
	x := sfnt.GlyphIndex(g.Index)
	segs, err := f.outlines.LoadGlyph(&f.buf, x, f.size.PPEM, nil)
	if err != nil {
		return err
	}
	// segs are invalidated by the next use of the buffer
	if g.Outline, err = otoutline.FromSegments(segs); err != nil {
		return err
	}
	g.Advance, err = f.outlines.GlyphAdvance(&f.buf, x, f.size.PPEM, hinting.fontHinting())
	return err
}

func (f *Face) loadShaperOutline(g *otoutline.Glyph, hinting Hinting) error {
	out, ok := f.shaper.GlyphDataOutline(tables.GlyphID(g.Index))
	if !ok {
		return errors.New("no outline data for glyph")
	}
	segs := make(sfnt.Segments, 0, len(out.Segments))
	for _, s := range out.Segments {
		var seg sfnt.Segment
		switch s.Op {
		case gotext.SegmentOpMoveTo:
			seg.Op = sfnt.SegmentOpMoveTo
		case gotext.SegmentOpLineTo:
			seg.Op = sfnt.SegmentOpLineTo
		case gotext.SegmentOpQuadTo:
			seg.Op = sfnt.SegmentOpQuadTo
		case gotext.SegmentOpCubeTo:
			seg.Op = sfnt.SegmentOpCubeTo
		default:
			return fmt.Errorf("unknown outline operation %d", s.Op)
		}
		for i, p := range s.ArgsSlice() {
			seg.Args[i] = fixed.Point26_6{X: f.scale(p.X), Y: -f.scale(p.Y)}
		}
		segs = append(segs, seg)
	}
	var err error
	if g.Outline, err = otoutline.FromSegments(segs); err != nil {
		return err
	}
	g.Advance = f.scale(f.shaper.HorizontalAdvance(font.GID(g.Index)))
	if hinting.fontHinting() == xfont.HintingFull {
		g.Advance = (g.Advance + 32) &^ 63
	}
	return nil
}

// scale converts font units to 26.6 pixels. Results beyond the outline
// bounds are clamped just outside of them, to be rejected later.
func (f *Face) scale(v float32) fixed.Int26_6 {
	s := math.Round(float64(v) * float64(f.size.YScale) / 0x10000)
	if s > otoutline.OutlineMax {
		return otoutline.OutlineMax + 1
	} else if s < -otoutline.OutlineMax {
		return -otoutline.OutlineMax - 1
	}
	return fixed.Int26_6(s)
}
