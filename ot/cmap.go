package ot

import (
	"fmt"
	"sort"
)

// --- CMap table ------------------------------------------------------------

// Platform IDs of cmap encoding records.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformMicrosoft uint16 = 3
)

// Encoding IDs for the Microsoft platform.
const (
	EncodingMSSymbol     uint16 = 0
	EncodingMSUnicodeBMP uint16 = 1
	EncodingMSShiftJIS   uint16 = 2
	EncodingMSPRC        uint16 = 3
	EncodingMSBig5       uint16 = 4
	EncodingMSWansung    uint16 = 5
	EncodingMSJohab      uint16 = 6
	EncodingMSUCS4       uint16 = 10
)

// Encoding IDs for the Unicode and Macintosh platforms.
const (
	EncodingUnicode2BMP   uint16 = 3
	EncodingUnicode2Full  uint16 = 4
	EncodingUnicodeFull13 uint16 = 6
	EncodingMacRoman      uint16 = 0
)

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// A font usually contains more than one mapping from code points to glyphs,
// each for a combination of platform and encoding. All of them are kept, in
// the order of the font's encoding records, as they are needed for charmap
// selection and classification.
type CMapTable struct {
	tableBase
	Version   uint16
	Subtables []CMapSubtable
	numGlyphs int
}

func newCMapTable(tag Tag, b binarySegm, offset, size uint32) *CMapTable {
	t := &CMapTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// NumGlyphs is the number of glyphs glyph indices are checked against, or 0
// if the font lacks a 'maxp' table.
func (t *CMapTable) NumGlyphs() int {
	return t.numGlyphs
}

// Lookup maps a character code to a glyph index using sub-table i.
// Glyph indices beyond the number of glyphs of the font are returned as 0.
func (t *CMapTable) Lookup(i int, code uint32) GlyphIndex {
	if t == nil || i < 0 || i >= len(t.Subtables) {
		return 0
	}
	g := t.Subtables[i].Lookup(code)
	if t.numGlyphs > 0 && int(g) >= t.numGlyphs {
		return 0
	}
	return g
}

// Find returns the position of the first sub-table for a platform/encoding
// combination, or -1.
func (t *CMapTable) Find(platform, encoding uint16) int {
	if t == nil {
		return -1
	}
	for i, st := range t.Subtables {
		if st.PlatformID == platform && st.EncodingID == encoding {
			return i
		}
	}
	return -1
}

// CMapSubtable is a single encoding record of a cmap together with the
// lookup for its sub-table format.
type CMapSubtable struct {
	PlatformID uint16
	EncodingID uint16
	Format     uint16
	Language   uint32
	data       binarySegm
}

// IsUnicode reports whether the sub-table maps Unicode code points.
func (st CMapSubtable) IsUnicode() bool {
	return st.PlatformID == PlatformUnicode ||
		(st.PlatformID == PlatformMicrosoft &&
			(st.EncodingID == EncodingMSUnicodeBMP || st.EncodingID == EncodingMSUCS4))
}

// Lookup returns the glyph index for a character code, or 0. Codes are
// interpreted in the sub-table's encoding. Unsupported formats always
// return 0.
func (st CMapSubtable) Lookup(code uint32) GlyphIndex {
	switch st.Format {
	case 0:
		return st.lookup0(code)
	case 2:
		return st.lookup2(code)
	case 4:
		return st.lookup4(code)
	case 6:
		return st.lookup6(code)
	case 10:
		return st.lookup10(code)
	case 12:
		return st.lookupGroups(code, false)
	case 13:
		return st.lookupGroups(code, true)
	}
	return 0
}

// Format 0: Byte encoding table.
func (st CMapSubtable) lookup0(code uint32) GlyphIndex {
	if code > 0xff {
		return 0
	}
	g, _ := st.data.u8(6 + int(code))
	return GlyphIndex(g)
}

// Format 2: High-byte mapping through table. Used for the legacy CJK
// encodings, where lead bytes select a sub-header.
func (st CMapSubtable) lookup2(code uint32) GlyphIndex {
	if code > 0xffff {
		return 0
	}
	hi, lo := code>>8, code&0xff
	var key uint16
	if hi == 0 {
		// a single byte code must not be a lead byte
		if st.data.U16(6+int(lo)*2) != 0 {
			return 0
		}
		key = 0
	} else {
		if key = st.data.U16(6 + int(hi)*2); key == 0 {
			return 0
		}
	}
	sub := 6 + 512 + int(key) // key is sub-header index × 8
	firstCode := uint32(st.data.U16(sub))
	entryCount := uint32(st.data.U16(sub + 2))
	idDelta := st.data.U16(sub + 4)
	idRangeOffset := int(st.data.U16(sub + 6))
	if lo < firstCode || lo >= firstCode+entryCount {
		return 0
	}
	pos := sub + 6 + idRangeOffset + int(lo-firstCode)*2
	g, err := st.data.u16(pos)
	if err != nil || g == 0 {
		return 0
	}
	return GlyphIndex(g + idDelta)
}

// Format 4: Segment mapping to delta values.
func (st CMapSubtable) lookup4(code uint32) GlyphIndex {
	if code > 0xffff {
		return 0
	}
	segCountX2 := int(st.data.U16(6))
	segCount := segCountX2 / 2
	endCodes := 14
	startCodes := 16 + segCountX2
	idDeltas := startCodes + segCountX2
	idRangeOffsets := idDeltas + segCountX2
	if idRangeOffsets+segCountX2 > len(st.data) {
		return 0
	}
	c := uint16(code)
	// find the first segment with endCode ≥ c
	i := sort.Search(segCount, func(i int) bool {
		return st.data.U16(endCodes+2*i) >= c
	})
	if i >= segCount {
		return 0
	}
	start := st.data.U16(startCodes + 2*i)
	if c < start {
		return 0
	}
	delta := st.data.U16(idDeltas + 2*i)
	ro := int(st.data.U16(idRangeOffsets + 2*i))
	if ro == 0 {
		return GlyphIndex(c + delta)
	}
	pos := idRangeOffsets + 2*i + ro + 2*int(c-start)
	g, err := st.data.u16(pos)
	if err != nil || g == 0 {
		return 0
	}
	return GlyphIndex(g + delta)
}

// Format 6: Trimmed table mapping.
func (st CMapSubtable) lookup6(code uint32) GlyphIndex {
	first := uint32(st.data.U16(6))
	count := uint32(st.data.U16(8))
	if code < first || code >= first+count {
		return 0
	}
	return GlyphIndex(st.data.U16(10 + 2*int(code-first)))
}

// Format 10: Trimmed array.
func (st CMapSubtable) lookup10(code uint32) GlyphIndex {
	first := st.data.U32(12)
	count := st.data.U32(16)
	if code < first || code-first >= count {
		return 0
	}
	return GlyphIndex(st.data.U16(20 + 2*int(code-first)))
}

// Format 12 (segmented coverage) and 13 (many-to-one range mappings).
func (st CMapSubtable) lookupGroups(code uint32, constant bool) GlyphIndex {
	n := int(st.data.U32(12))
	if 16+n*12 > len(st.data) {
		n = (len(st.data) - 16) / 12
	}
	i := sort.Search(n, func(i int) bool {
		return st.data.U32(16+12*i+4) >= code
	})
	if i >= n {
		return 0
	}
	grp := 16 + 12*i
	start, glyph := st.data.U32(grp), st.data.U32(grp+8)
	if code < start {
		return 0
	}
	if !constant {
		glyph += code - start
	}
	if glyph > 0xffff {
		return 0
	}
	return GlyphIndex(glyph)
}

// cmapSubtableLength returns the declared byte length of a sub-table.
func cmapSubtableLength(b binarySegm) (int, error) {
	format, err := b.u16(0)
	if err != nil {
		return 0, err
	}
	switch format {
	case 0, 2, 4, 6:
		n, err := b.u16(2)
		return int(n), err
	case 8, 10, 12, 13, 14:
		n, err := b.u32(4)
		return int(n), err
	}
	return 0, fmt.Errorf("unknown cmap sub-table format %d", format)
}

// parseCMap reads all encoding records of a cmap table.
//
// The 'cmap' table does not specify a priority of encoding records, and font
// engines choose differently. We keep every record in font order and leave
// the choice to clients.
func parseCMap(tag Tag, b binarySegm, offset, size uint32, issues *issueLog) (Table, error) {
	const headerSize, entrySize = 4, 8
	n, err := b.u16(2) // number of sub-tables
	if err != nil {
		return nil, errFontFormat("cmap header")
	}
	tracer().Debugf("font cmap has %d sub-tables in %d|%d bytes", n, len(b), size)
	t := newCMapTable(tag, b, offset, size)
	t.Version = b.U16(0)
	entriesSize, err := checkedMulInt(entrySize, int(n))
	if err != nil || headerSize+entriesSize > len(b) {
		return nil, errFontFormat("size of cmap table")
	}
	for i := 0; i < int(n); i++ {
		rec := b[headerSize+entrySize*i:]
		st := CMapSubtable{
			PlatformID: u16(rec),
			EncodingID: u16(rec[2:]),
		}
		link := int(u32(rec[4:]))
		if link < 0 || link+4 > len(b) {
			issues.report(tag, "Subtable", SeverityMinor, offset, "sub-table %d (platform=%d, encoding=%d) out of bounds",
				i, st.PlatformID, st.EncodingID)
			continue
		}
		sub := b[link:]
		st.Format = sub.U16(0)
		length, err := cmapSubtableLength(sub)
		if err != nil {
			tracer().Infof("cmap sub-table %d has unsupported format %d", i, st.Format)
			issues.report(tag, "Subtable", SeverityMinor, offset+uint32(link), "%v", err)
		} else if length > len(sub) || length < 4 {
			// declared lengths of format 4 tables are notoriously off
			issues.report(tag, "Subtable", SeverityMinor, offset+uint32(link), "sub-table %d length %d exceeds table", i, length)
		} else {
			sub = sub[:length]
		}
		st.data = sub
		switch st.Format {
		case 0, 2, 4, 6:
			st.Language = uint32(sub.U16(4))
		case 10, 12, 13:
			st.Language = sub.U32(8)
		}
		t.Subtables = append(t.Subtables, st)
	}
	return t, nil
}
