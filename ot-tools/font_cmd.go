package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otclass"
	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otquery"
	"github.com/thatisuday/commando"
)

func runClassifyCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(false)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		fatalf("cannot read font %s: %v", fontPath, err)
	}
	offsets, err := ot.ParseCollection(data)
	if err != nil {
		fatalf("cannot parse font %s: %v", fontPath, err)
	}
	index := mustFlagInt(flags["index"], "index")
	if index >= len(offsets) {
		fatalf("font %s has %d face(s)", fontPath, len(offsets))
	}
	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Faces: %d\n", len(offsets))
	for i := range offsets {
		if index >= 0 && i != index {
			continue
		}
		face, err := otface.OpenStream(fontPath, otface.MemoryStream(data), i, "")
		if err != nil {
			fmt.Printf("face %d: %v\n", i, err)
			continue
		}
		printFace(face)
		face.Close()
	}
}

func printFace(face *otface.Face) {
	otf := face.Font()
	fmt.Printf("--- face %d ---\n", face.Index())
	if ps, ok := face.PostScriptName().Unwrap(); ok {
		fmt.Printf("PostScript name: %s\n", ps)
	}
	fmt.Printf("Families: %s\n", strings.Join(otquery.FamilyNames(otf), ", "))
	fmt.Printf("Full names: %s\n", strings.Join(otquery.FullNames(otf), ", "))
	fmt.Printf("Style: %s, weight %d\n", otquery.StyleFlags(otf), otquery.Weight(otf))
	outlines := "TrueType"
	if face.IsPostScript() {
		outlines = "CFF"
	}
	fmt.Printf("Outlines: %s\n", outlines)

	class := otclass.Classify(face)
	charsets := make([]string, len(class.Charsets))
	for i, cs := range class.Charsets {
		charsets[i] = cs.String()
	}
	fmt.Printf("Charset: %s (supported: %s)\n", class.Charset, strings.Join(charsets, ","))
	fmt.Printf("Family: %s, pitch: %s, cmap: %s\n", class.Family, class.Pitch, class.CmapType)
	fmt.Printf("Panose: %v\n", class.Panose)

	m := face.Metrics()
	fmt.Printf("Metrics: upem=%d ascender=%d descender=%d height=%d (%s)\n",
		m.UnitsPerEm, m.Ascender, m.Descender, m.Height, m.Source)
	for i, st := range otf.CMap.Subtables {
		mark := " "
		if i == face.Charmap() {
			mark = "*"
		}
		fmt.Printf("%s cmap %d: platform=%d encoding=%d format=%d (%s)\n", mark, i,
			st.PlatformID, st.EncodingID, st.Format, otcmap.EncodingOf(st.PlatformID, st.EncodingID))
	}
}
