package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/subfont/otoutline"
	"github.com/pterm/pterm"
)

// codeArg reads a character argument, either literally or as U+XXXX.
func codeArg(op *Op) (rune, error) {
	arg, ok := op.hasArg()
	if !ok {
		return 0, fmt.Errorf("%s needs a character argument", opNames[op.code])
	}
	if hex, found := strings.CutPrefix(strings.ToUpper(arg), "U+"); found {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid code point: %v", arg)
		}
		return rune(n), nil
	}
	r, _ := utf8.DecodeRuneInString(arg)
	return r, nil
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	code, err := codeArg(op)
	if err != nil {
		return err, false
	}
	i, gid := intp.font.GlyphIndex(code)
	pterm.Printf("%q (U+%04X) => face %d (%s), glyph %d\n", code, code, i, intp.font.Face(i).Name(), gid)
	return nil, false
}

// outlineOp prints the outline of a glyph. The format argument selects
// decorations: any combination of "ul", "st" and "rot", joined by '+'.
func outlineOp(intp *Intp, op *Op) (error, bool) {
	code, err := codeArg(op)
	if err != nil {
		return err, false
	}
	var flags otoutline.Deco
	for _, f := range strings.Split(op.format, "+") {
		switch f {
		case "ul":
			flags |= otoutline.DecoUnderline
		case "st":
			flags |= otoutline.DecoStrikethrough
		case "rot":
			flags |= otoutline.DecoRotate
		case "":
		default:
			return fmt.Errorf("unknown decoration: %v", f), false
		}
	}
	i, gid := intp.font.GlyphIndex(code)
	g, err := intp.font.LoadGlyph(i, gid, intp.lib.Hinting())
	if err != nil {
		return err, false
	}
	outline, adv, err := intp.font.GlyphOutline(i, g, flags)
	if err != nil {
		return err, false
	}
	pterm.Printf("glyph %d of face %d, advance %v, %d points\n", gid, i, adv, len(outline.Points))
	data := [][]string{{"Contour", "Segments", "Points"}}
	var segs, pts []string
	p := 0
	for _, s := range outline.Segments {
		n := int(s & otoutline.SegmentCountMask)
		segs = append(segs, strconv.Itoa(n))
		for _, v := range outline.Points[p : p+n] {
			pts = append(pts, fmt.Sprintf("(%d,%d)", v.X, v.Y))
		}
		p += n
		if s&otoutline.ContourEnd != 0 {
			data = append(data, []string{
				strconv.Itoa(len(data) - 1),
				strings.Join(segs, " "),
				strings.Join(pts, " "),
			})
			segs, pts = nil, nil
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// chainOp prints the fallback chain with the legacy classification of
// every face.
func chainOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{
		{"Pos", "UID", "Face", "Index", "Charset", "Family", "Pitch", "Weight", "Italic", "Bold"},
	}
	for i := 0; i < intp.font.NumFaces(); i++ {
		face := intp.font.Face(i)
		class, _ := intp.font.Classification(i)
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.Itoa(intp.font.UID(i)),
			face.Name(),
			strconv.Itoa(face.Index()),
			class.Charset.String(),
			class.Family.String(),
			class.Pitch.String(),
			strconv.Itoa(class.Weight),
			strconv.FormatBool(class.Italic),
			strconv.FormatBool(class.Bold),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func metricsOp(intp *Intp, op *Op) (error, bool) {
	i, err := faceArg(op)
	if err != nil {
		return err, false
	}
	face := intp.font.Face(i)
	if face == nil {
		return fmt.Errorf("no face %d in fallback chain", i), false
	}
	m, size := face.Metrics(), face.Size()
	asc, desc := intp.font.AscDesc(i)
	pterm.Printf("face %d: upem=%d ascender=%d descender=%d height=%d (%s)\n",
		i, m.UnitsPerEm, m.Ascender, m.Descender, m.Height, m.Source)
	pterm.Printf("size %g px: y-scale=%#x ppem=%v ascender=%d/64 descender=%d/64\n",
		size.Size, size.YScale, size.PPEM, asc, desc)
	return nil, false
}
