package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/subfont"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/npillmayer/subfont/otresolve"
	"github.com/thatisuday/commando"
)

func runResolveCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	lib, f := mustOpenFont(args, flags)
	defer lib.Close()
	input, err := parseTextInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	var deco otoutline.Deco
	if f.Desc().Vertical {
		deco |= otoutline.DecoRotate
	}
	glyphs := lib.LayoutText(f, input, deco)
	fmt.Println(formatGlyphOutput(glyphs))
	fmt.Println(formatChain(f))
}

// ---Formatting the Output ---------------------------------------------

// formatGlyphOutput prints glyphs in the manner of hb-shape:
// [face:glyph=pen+advance|...], with positions in 26.6 units.
func formatGlyphOutput(glyphs []subfont.PlacedGlyph) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, g := range glyphs {
		if i > 0 {
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, "%d:%d=%d+%d", g.Face, g.Glyph, g.Pen, g.Advance)
	}
	sb.WriteByte(']')
	return sb.String()
}

func formatChain(f *otresolve.Font) string {
	var sb strings.Builder
	for i := 0; i < f.NumFaces(); i++ {
		face := f.Face(i)
		class, _ := f.Classification(i)
		asc, desc := f.AscDesc(i)
		fmt.Fprintf(&sb, "face %d (uid %d): %s #%d, charset %s, %s/%s, weight %d, asc/desc %d/%d\n",
			i, f.UID(i), face.Name(), face.Index(), class.Charset, class.Family, class.Pitch,
			class.Weight, asc, desc)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
