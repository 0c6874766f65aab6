/*
Package testfont synthesizes small sfnt fonts in memory for tests.

Fonts are built from a Spec, which describes glyphs as rectangles together
with the metadata tables relevant for font classification. The resulting
binaries are accepted by package ot, by golang.org/x/image/font/sfnt (as long
as the font has a Unicode or symbol cmap) and by go-text/typesetting.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package testfont

import (
	"encoding/binary"
	"sort"
	"unicode/utf16"
)

// Glyph is a test glyph: a single rectangular contour in font units. A zero
// rectangle produces an empty glyph.
type Glyph struct {
	Advance  uint16
	VAdvance uint16   // used only if Spec.Vertical is set
	Rect     [4]int16 // xMin, yMin, xMax, yMax
	Reverse  bool     // counter-clockwise contour (PostScript orientation)
}

// CMap describes a cmap sub-table.
type CMap struct {
	Platform, Encoding uint16
	Format             uint16 // 0, 2, 4 or 12
	Map                map[uint32]uint16
}

// OS2 contains the fields of table 'OS/2' a test may want to control.
type OS2 struct {
	Version           uint16
	WeightClass       uint16
	FsSelection       uint16
	FirstChar         uint16
	LastChar          uint16
	TypoAscender      int16
	TypoDescender     int16
	TypoLineGap       int16
	WinAscent         uint16
	WinDescent        uint16
	CodePageRange1    uint32
	CodePageRange2    uint32
	Panose            [10]byte
	StrikeoutSize     int16
	StrikeoutPosition int16
}

// Post contains the fields of table 'post' a test may want to control.
type Post struct {
	Format             uint32
	UnderlinePosition  int16
	UnderlineThickness int16
	FixedPitch         bool
}

// Spec describes a test font.
type Spec struct {
	CFF        bool // write an 'OTTO' header; no outlines are generated
	UnitsPerEm uint16
	BBox       [4]int16
	MacStyle   uint16
	Ascender   int16 // hhea
	Descender  int16
	LineGap    int16
	Glyphs     []Glyph // glyph 0 is .notdef
	CMaps      []CMap
	OS2        *OS2
	Post       *Post
	Names      map[uint16]string // Windows Unicode names, US English
	Vertical   bool              // write vhea/vmtx
}

// Default returns a spec with an upem of 1000, glyphs for .notdef, 'A', 'B'
// and space, a (3,1) Unicode cmap and OS/2 and post tables.
func Default() Spec {
	box := [4]int16{50, 0, 550, 700}
	return Spec{
		UnitsPerEm: 1000,
		BBox:       [4]int16{0, -200, 600, 800},
		Ascender:   800,
		Descender:  -200,
		LineGap:    90,
		Glyphs: []Glyph{
			{Advance: 500, VAdvance: 1000, Rect: [4]int16{50, 0, 450, 700}},
			{Advance: 600, VAdvance: 1000, Rect: box},
			{Advance: 600, VAdvance: 1000, Rect: box},
			{Advance: 250, VAdvance: 1000},
		},
		CMaps: []CMap{
			{Platform: 3, Encoding: 1, Format: 4, Map: map[uint32]uint16{'A': 1, 'B': 2, ' ': 3}},
		},
		OS2: &OS2{
			Version:           1,
			WeightClass:       400,
			FsSelection:       0x40,
			FirstChar:         0x20,
			LastChar:          0x42,
			TypoAscender:      750,
			TypoDescender:     -250,
			WinAscent:         900,
			WinDescent:        300,
			CodePageRange1:    1,
			Panose:            [10]byte{2, 11, 5, 2, 2, 2, 2, 2, 2, 4},
			StrikeoutSize:     50,
			StrikeoutPosition: 300,
		},
		Post:  &Post{Format: 0x30000, UnderlinePosition: -100, UnderlineThickness: 50},
		Names: map[uint16]string{1: "Test Sans", 2: "Regular", 4: "Test Sans Regular", 6: "TestSans-Regular"},
	}
}

// Font is a synthesized font as a set of raw tables.
type Font struct {
	flavor uint32
	tables map[string][]byte
}

// Build synthesizes the tables of a font from a spec.
func Build(s Spec) *Font {
	f := &Font{flavor: 0x00010000, tables: make(map[string][]byte)}
	if s.CFF {
		f.flavor = 0x4f54544f
	}
	if s.UnitsPerEm == 0 {
		s.UnitsPerEm = 1000
	}
	n := len(s.Glyphs)
	f.tables["head"] = head(s)
	f.tables["hhea"] = hhea(s.Ascender, s.Descender, s.LineGap, s.Glyphs, false)
	f.tables["hmtx"] = hmtx(s.Glyphs, false)
	if s.CFF {
		f.tables["maxp"] = be(uint32(0x00005000), uint16(n))
	} else {
		maxp := make([]byte, 32)
		binary.BigEndian.PutUint32(maxp, 0x00010000)
		binary.BigEndian.PutUint16(maxp[4:], uint16(n))
		f.tables["maxp"] = maxp
		f.tables["glyf"], f.tables["loca"] = glyf(s.Glyphs)
	}
	f.tables["cmap"] = cmap(s.CMaps)
	if s.OS2 != nil {
		f.tables["OS/2"] = os2(s.OS2)
	}
	if s.Post != nil {
		f.tables["post"] = post(s.Post, n)
	}
	if len(s.Names) > 0 {
		f.tables["name"] = name(s.Names)
	}
	if s.Vertical {
		f.tables["vhea"] = hhea(s.Ascender, s.Descender, s.LineGap, s.Glyphs, true)
		f.tables["vmtx"] = hmtx(s.Glyphs, true)
	}
	return f
}

// SetTable replaces or adds a raw table.
func (f *Font) SetTable(tag string, data []byte) *Font {
	f.tables[tag] = data
	return f
}

// RemoveTable deletes a table from the font.
func (f *Font) RemoveTable(tag string) *Font {
	delete(f.tables, tag)
	return f
}

// Bytes returns the binary sfnt representation.
func (f *Font) Bytes() []byte {
	return f.bytesAt(0)
}

// size returns the length of the binary representation.
func (f *Font) size() int {
	n := 12 + 16*len(f.tables)
	for _, t := range f.tables {
		n += pad4(len(t))
	}
	return n
}

// bytesAt serializes the font with table offsets relative to a file
// position base, as needed for members of collections.
func (f *Font) bytesAt(base uint32) []byte {
	tags := make([]string, 0, len(f.tables))
	for tag := range f.tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	out := make([]byte, 12+16*len(tags), f.size())
	binary.BigEndian.PutUint32(out, f.flavor)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))
	off := len(out)
	for i, tag := range tags {
		rec := out[12+16*i:]
		copy(rec, (tag + "    ")[:4])
		binary.BigEndian.PutUint32(rec[8:], base+uint32(off))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(f.tables[tag])))
		off += pad4(len(f.tables[tag]))
	}
	for _, tag := range tags {
		t := f.tables[tag]
		out = append(out, t...)
		out = append(out, make([]byte, pad4(len(t))-len(t))...)
	}
	return out
}

// Collection serializes fonts as a 'ttcf' font collection.
func Collection(fonts ...*Font) []byte {
	header := 12 + 4*len(fonts)
	out := make([]byte, header)
	copy(out, "ttcf")
	binary.BigEndian.PutUint32(out[4:], 0x00010000)
	binary.BigEndian.PutUint32(out[8:], uint32(len(fonts)))
	for i, f := range fonts {
		base := uint32(len(out))
		binary.BigEndian.PutUint32(out[12+4*i:], base)
		out = append(out, f.bytesAt(base)...)
	}
	return out
}

// --- Tables ----------------------------------------------------------------

func head(s Spec) []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint32(b, 0x00010000)
	binary.BigEndian.PutUint32(b[12:], 0x5f0f3cf5)
	binary.BigEndian.PutUint16(b[18:], s.UnitsPerEm)
	for i, v := range s.BBox {
		binary.BigEndian.PutUint16(b[36+2*i:], uint16(v))
	}
	binary.BigEndian.PutUint16(b[44:], s.MacStyle)
	binary.BigEndian.PutUint16(b[50:], 1) // long loca offsets
	return b
}

func hhea(asc, desc, gap int16, glyphs []Glyph, vertical bool) []byte {
	b := make([]byte, 36)
	binary.BigEndian.PutUint32(b, 0x00010000)
	binary.BigEndian.PutUint16(b[4:], uint16(asc))
	binary.BigEndian.PutUint16(b[6:], uint16(desc))
	binary.BigEndian.PutUint16(b[8:], uint16(gap))
	var max uint16
	for _, g := range glyphs {
		adv := g.Advance
		if vertical {
			adv = g.VAdvance
		}
		if adv > max {
			max = adv
		}
	}
	binary.BigEndian.PutUint16(b[10:], max)
	binary.BigEndian.PutUint16(b[18:], 1) // caret slope rise
	binary.BigEndian.PutUint16(b[34:], uint16(len(glyphs)))
	return b
}

func hmtx(glyphs []Glyph, vertical bool) []byte {
	b := make([]byte, 0, 4*len(glyphs))
	for _, g := range glyphs {
		if vertical {
			b = append(b, be(g.VAdvance, uint16(0))...)
		} else {
			b = append(b, be(g.Advance, uint16(g.Rect[0]))...)
		}
	}
	return b
}

func glyf(glyphs []Glyph) (glyf, loca []byte) {
	loca = make([]byte, 4*(len(glyphs)+1))
	for i, g := range glyphs {
		binary.BigEndian.PutUint32(loca[4*i:], uint32(len(glyf)))
		if g.Rect == [4]int16{} {
			continue
		}
		x0, y0, x1, y1 := g.Rect[0], g.Rect[1], g.Rect[2], g.Rect[3]
		// clockwise in y-up coordinates: left edge up, top edge right
		xs := []int16{x0, x0, x1, x1}
		ys := []int16{y0, y1, y1, y0}
		if g.Reverse {
			xs = []int16{x0, x1, x1, x0}
			ys = []int16{y0, y0, y1, y1}
		}
		data := be(int16(1), x0, y0, x1, y1, uint16(3), uint16(0))
		data = append(data, 1, 1, 1, 1) // on-curve, 16-bit deltas
		var px, py int16
		for _, x := range xs {
			data = append(data, be(x-px)...)
			px = x
		}
		for _, y := range ys {
			data = append(data, be(y-py)...)
			py = y
		}
		glyf = append(glyf, data...)
		glyf = append(glyf, make([]byte, pad4(len(data))-len(data))...)
	}
	binary.BigEndian.PutUint32(loca[4*len(glyphs):], uint32(len(glyf)))
	return glyf, loca
}

func os2(o *OS2) []byte {
	size := 78
	switch {
	case o.Version >= 2:
		size = 96
	case o.Version == 1:
		size = 86
	}
	b := make([]byte, size)
	binary.BigEndian.PutUint16(b, o.Version)
	binary.BigEndian.PutUint16(b[4:], o.WeightClass)
	binary.BigEndian.PutUint16(b[6:], 5)
	binary.BigEndian.PutUint16(b[26:], uint16(o.StrikeoutSize))
	binary.BigEndian.PutUint16(b[28:], uint16(o.StrikeoutPosition))
	copy(b[32:42], o.Panose[:])
	copy(b[58:62], "TEST")
	binary.BigEndian.PutUint16(b[62:], o.FsSelection)
	binary.BigEndian.PutUint16(b[64:], o.FirstChar)
	binary.BigEndian.PutUint16(b[66:], o.LastChar)
	binary.BigEndian.PutUint16(b[68:], uint16(o.TypoAscender))
	binary.BigEndian.PutUint16(b[70:], uint16(o.TypoDescender))
	binary.BigEndian.PutUint16(b[72:], uint16(o.TypoLineGap))
	binary.BigEndian.PutUint16(b[74:], o.WinAscent)
	binary.BigEndian.PutUint16(b[76:], o.WinDescent)
	if size >= 86 {
		binary.BigEndian.PutUint32(b[78:], o.CodePageRange1)
		binary.BigEndian.PutUint32(b[82:], o.CodePageRange2)
	}
	return b
}

func post(p *Post, numGlyphs int) []byte {
	b := make([]byte, 32)
	binary.BigEndian.PutUint32(b, p.Format)
	binary.BigEndian.PutUint16(b[8:], uint16(p.UnderlinePosition))
	binary.BigEndian.PutUint16(b[10:], uint16(p.UnderlineThickness))
	if p.FixedPitch {
		binary.BigEndian.PutUint32(b[12:], 1)
	}
	if p.Format == 0x20000 {
		// glyph name indices, all pointing to standard name 0 (.notdef)
		b = append(b, be(uint16(numGlyphs))...)
		b = append(b, make([]byte, 2*numGlyphs)...)
	}
	return b
}

func name(names map[uint16]string) []byte {
	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	var strs []byte
	recs := make([]byte, 0, 12*len(ids))
	for _, id := range ids {
		u := utf16.Encode([]rune(names[uint16(id)]))
		s := make([]byte, 2*len(u))
		for i, c := range u {
			binary.BigEndian.PutUint16(s[2*i:], c)
		}
		recs = append(recs, be(uint16(3), uint16(1), uint16(0x409), uint16(id),
			uint16(len(s)), uint16(len(strs)))...)
		strs = append(strs, s...)
	}
	b := be(uint16(0), uint16(len(ids)), uint16(6+len(recs)))
	b = append(b, recs...)
	return append(b, strs...)
}

// --- cmap ------------------------------------------------------------------

func cmap(cmaps []CMap) []byte {
	header := 4 + 8*len(cmaps)
	b := make([]byte, header)
	binary.BigEndian.PutUint16(b[2:], uint16(len(cmaps)))
	for i, cm := range cmaps {
		rec := b[4+8*i:]
		binary.BigEndian.PutUint16(rec, cm.Platform)
		binary.BigEndian.PutUint16(rec[2:], cm.Encoding)
		binary.BigEndian.PutUint32(rec[4:], uint32(len(b)))
		var sub []byte
		switch cm.Format {
		case 0:
			sub = cmap0(cm.Map)
		case 2:
			sub = cmap2(cm.Map)
		case 12:
			sub = cmap12(cm.Map)
		default:
			sub = cmap4(cm.Map)
		}
		b = append(b, sub...)
		b = append(b, make([]byte, pad4(len(sub))-len(sub))...)
	}
	return b
}

func sortedCodes(m map[uint32]uint16) []uint32 {
	codes := make([]uint32, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func cmap0(m map[uint32]uint16) []byte {
	b := be(uint16(0), uint16(262), uint16(0))
	arr := make([]byte, 256)
	for c, g := range m {
		if c < 256 {
			arr[c] = byte(g)
		}
	}
	return append(b, arr...)
}

// cmap4 writes one segment per code point plus the terminating segment.
func cmap4(m map[uint32]uint16) []byte {
	var codes []uint32
	for _, c := range sortedCodes(m) {
		if c < 0xffff {
			codes = append(codes, c)
		}
	}
	segs := len(codes) + 1
	length := 16 + 8*segs
	b := be(uint16(4), uint16(length), uint16(0), uint16(2*segs), uint16(0), uint16(0), uint16(0))
	ends := make([]byte, 0, 2*segs)
	starts := make([]byte, 0, 2*segs)
	deltas := make([]byte, 0, 2*segs)
	for _, c := range codes {
		ends = append(ends, be(uint16(c))...)
		starts = append(starts, be(uint16(c))...)
		deltas = append(deltas, be(m[c]-uint16(c))...)
	}
	ends = append(ends, 0xff, 0xff)
	starts = append(starts, 0xff, 0xff)
	deltas = append(deltas, 0, 1)
	b = append(b, ends...)
	b = append(b, 0, 0) // reservedPad
	b = append(b, starts...)
	b = append(b, deltas...)
	return append(b, make([]byte, 2*segs)...) // idRangeOffsets
}

func cmap12(m map[uint32]uint16) []byte {
	codes := sortedCodes(m)
	b := be(uint16(12), uint16(0), uint32(16+12*len(codes)), uint32(0), uint32(len(codes)))
	for _, c := range codes {
		b = append(b, be(c, c, uint32(m[c]))...)
	}
	return b
}

// cmap2 writes sub-header 0 for single byte codes and one sub-header with a
// full 256 entry glyph array for every lead byte.
func cmap2(m map[uint32]uint16) []byte {
	var leads []uint32
	seen := map[uint32]bool{}
	for _, c := range sortedCodes(m) {
		if hi := c >> 8; hi != 0 && !seen[hi] {
			seen[hi] = true
			leads = append(leads, hi)
		}
	}
	nsub := 1 + len(leads)
	keys := make([]byte, 512)
	for k, hi := range leads {
		binary.BigEndian.PutUint16(keys[2*hi:], uint16(8*(k+1)))
	}
	arraysStart := 6 + 512 + 8*nsub
	subs := make([]byte, 0, 8*nsub)
	arrays := make([]byte, 512*nsub)
	for k := 0; k < nsub; k++ {
		field := 6 + 512 + 8*k + 6
		subs = append(subs, be(uint16(0), uint16(256), uint16(0), uint16(arraysStart+512*k-field))...)
	}
	for c, g := range m {
		k := 0
		if hi := c >> 8; hi != 0 {
			for i, l := range leads {
				if l == hi {
					k = i + 1
				}
			}
		}
		binary.BigEndian.PutUint16(arrays[512*k+2*int(c&0xff):], g)
	}
	length := arraysStart + len(arrays)
	b := be(uint16(2), uint16(length), uint16(0))
	b = append(b, keys...)
	b = append(b, subs...)
	return append(b, arrays...)
}

// --- Helpers ---------------------------------------------------------------

func pad4(n int) int {
	return (n + 3) &^ 3
}

// be encodes fixed size values big-endian.
func be(values ...any) []byte {
	var b []byte
	for _, v := range values {
		switch x := v.(type) {
		case uint16:
			b = binary.BigEndian.AppendUint16(b, x)
		case int16:
			b = binary.BigEndian.AppendUint16(b, uint16(x))
		case uint32:
			b = binary.BigEndian.AppendUint32(b, x)
		default:
			panic("testfont: unsupported value type")
		}
	}
	return b
}
