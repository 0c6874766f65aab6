package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/subfont"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/thatisuday/commando"
	"golang.org/x/image/vector"
)

const margin = 16 // pixels around the rendered text

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	lib, f := mustOpenFont(args, flags)
	defer lib.Close()
	input, err := parseTextInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" {
		fatalf("input text is empty")
	}
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	deco, err := parseDeco(mustFlagString(flags["deco"], "deco"))
	if err != nil {
		fatalf("%v", err)
	}
	if f.Desc().Vertical {
		deco |= otoutline.DecoRotate
	}
	glyphs := lib.LayoutText(f, input, deco)
	if len(glyphs) == 0 {
		fatalf("no glyphs to render")
	}
	asc, desc := f.AscDesc(0)
	baseline := margin + float32(asc)/64
	height := mustFlagInt(flags["height"], "height")
	if height <= 0 {
		height = int(baseline+float32(desc)/64) + margin
	}
	last := glyphs[len(glyphs)-1]
	width := int(float32(last.Pen+last.Advance)/64) + 2*margin
	showBBoxes := mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if err := renderGlyphRunPNG(glyphs, outPath, width, height, baseline, showBBoxes); err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (glyphs=%d, faces=%d)\n", outPath, len(glyphs), f.NumFaces())
}

func parseDeco(spec string) (otoutline.Deco, error) {
	var deco otoutline.Deco
	for _, d := range splitCSVSpace(spec) {
		switch strings.ToLower(d) {
		case "ul", "underline":
			deco |= otoutline.DecoUnderline
		case "st", "strikethrough":
			deco |= otoutline.DecoStrikethrough
		default:
			return 0, fmt.Errorf("unknown decoration %q", d)
		}
	}
	return deco, nil
}

// renderGlyphRunPNG rasterizes placed glyphs onto a white image. Glyph
// outlines are in 26.6 pixels, y down, relative to the pen position on
// the baseline.
func renderGlyphRunPNG(glyphs []subfont.PlacedGlyph, outPath string, width, height int, baseline float32, showBBoxes bool) error {
	if width <= 0 || height <= 0 {
		return errors.New("empty image")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, g := range glyphs {
		dx := float32(margin) + float32(g.Pen)/64
		drawOutline(rast, g.Outline, dx, baseline)
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	if showBBoxes {
		for _, g := range glyphs {
			if g.Outline.Empty() {
				continue
			}
			dx := float32(margin) + float32(g.Pen)/64
			minX, minY, maxX, maxY := bounds(g.Outline)
			drawRectOutline(img,
				int(dx+float32(minX)/64), int(baseline+float32(minY)/64),
				int(dx+float32(maxX)/64)+1, int(baseline+float32(maxY)/64)+1,
				color.RGBA{255, 0, 0, 255})
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

// drawOutline feeds the contours of an outline to the rasterizer. Each
// segment starts at its first point and ends at the first point of the
// next segment, or at the start of its contour.
func drawOutline(rast *vector.Rasterizer, o otoutline.Outline, dx, dy float32) {
	pt := func(v otoutline.Vector) (float32, float32) {
		return dx + float32(v.X)/64, dy + float32(v.Y)/64
	}
	start, p := 0, 0
	for _, seg := range o.Segments {
		n := int(seg & otoutline.SegmentCountMask)
		if p == start {
			rast.MoveTo(pt(o.Points[p]))
		}
		end := start
		if seg&otoutline.ContourEnd == 0 {
			end = p + n
		}
		ex, ey := pt(o.Points[end])
		switch n {
		case 1:
			rast.LineTo(ex, ey)
		case 2:
			cx, cy := pt(o.Points[p+1])
			rast.QuadTo(cx, cy, ex, ey)
		case 3:
			c1x, c1y := pt(o.Points[p+1])
			c2x, c2y := pt(o.Points[p+2])
			rast.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
		}
		p += n
		if seg&otoutline.ContourEnd != 0 {
			start = p
		}
	}
}

func bounds(o otoutline.Outline) (minX, minY, maxX, maxY int32) {
	for i, v := range o.Points {
		if i == 0 {
			minX, minY, maxX, maxY = v.X, v.Y, v.X, v.Y
			continue
		}
		minX, minY = min(minX, v.X), min(minY, v.Y)
		maxX, maxY = max(maxX, v.X), max(maxY, v.Y)
	}
	return
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if img == nil {
		return
	}
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	// top and bottom
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	// left and right
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
