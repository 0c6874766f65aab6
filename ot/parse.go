package ot

import (
	"fmt"
	"math"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

const (
	fontTypeTrueType = 0x00010000
	fontTypeCFF      = 0x4f54544f // OTTO
	fontTypeApple    = 0x74727565 // true
	collectionTag    = 0x74746366 // ttcf
)

// MaxCollectionSize limits the number of members accepted in a font collection.
const MaxCollectionSize = 1024

// Parse parses a single (non-collection) font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
func Parse(font []byte) (*Font, error) {
	return ParseAt(font, 0)
}

// ParseCollection returns the table directory offsets of all fonts contained
// in a font file. For a collection ('ttcf') these are taken from the
// collection header; for a plain font the result is a single offset 0.
func ParseCollection(font []byte) ([]uint32, error) {
	if err := CheckFontSize(int64(len(font))); err != nil {
		return nil, err
	}
	src := binarySegm(font)
	tag, err := src.u32(0)
	if err != nil {
		return nil, errFontFormat("file too short")
	}
	if tag != collectionTag {
		return []uint32{0}, nil
	}
	n, err := src.u32(8)
	if err != nil {
		return nil, errFontFormat("collection header")
	}
	if n == 0 || n > MaxCollectionSize {
		return nil, errFontFormat(fmt.Sprintf("collection size %d", n))
	}
	offsets := make([]uint32, n)
	for i := range offsets {
		off, err := src.u32(12 + 4*i)
		if err != nil {
			return nil, errFontFormat("collection offset table")
		}
		offsets[i] = off
	}
	return offsets, nil
}

// CollectionIndex returns the index of the collection member whose table
// directory starts at dirOffset, or -1.
func CollectionIndex(font []byte, dirOffset uint32) int {
	offsets, err := ParseCollection(font)
	if err != nil {
		return -1
	}
	for i, off := range offsets {
		if off == dirOffset {
			return i
		}
	}
	return -1
}

// ParseAt parses the font whose table directory starts at dirOffset.
// Table offsets are interpreted relative to the start of font, which
// makes ParseAt suitable for members of font collections.
func ParseAt(font []byte, dirOffset uint32) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	src := binarySegm(font)
	hdr, err := src.view(int(dirOffset), 12)
	if err != nil {
		return nil, errFontFormat("font header")
	}
	h := FontHeader{
		FontType:   u32(hdr),
		TableCount: u16(hdr[4:]),
		DirOffset:  dirOffset,
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	var issues issueLog
	if !(h.FontType == fontTypeCFF || h.FontType == fontTypeTrueType || h.FontType == fontTypeApple) {
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, errFontFormat(fmt.Sprintf("table count too large: %v", err))
	}
	buf, err := src.view(int(dirOffset)+12, tableRecordsSize)
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b := buf; len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // "all tables must begin on four byte boundaries"
			issues.report(tag, "Directory", SeverityMinor, off, "table offset not aligned")
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil || off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			issues.report(tag, "Bounds", SeverityMajor, off, "bounds [%d:%d] exceed font size %d",
				off, tableEnd, len(src))
			continue
		}
		otf.tables[tag] = parseTable(tag, src[off:tableEnd], off, size, &issues)
	}
	if err := linkTables(otf, &issues); err != nil {
		return nil, err
	}
	otf.issues = issues
	return otf, nil
}

// RequiredTables lists the tables a font must contain to be usable for
// glyph lookup.
var RequiredTables = []string{"cmap", "head"}

// linkTables checks for required tables, stores shortcuts to the typed tables
// and resolves dependencies between tables (hhea → hmtx, vhea → vmtx).
func linkTables(otf *Font, issues *issueLog) error {
	for _, tag := range RequiredTables {
		if otf.tables[T(tag)] == nil {
			issues.report(T(tag), "Missing", SeverityCritical, 0, "missing required table")
			return errFontFormat("missing required table " + tag)
		}
	}
	if otf.CMap = otf.tables[T("cmap")].Self().AsCMap(); otf.CMap == nil {
		return errFontFormat("cmap table unusable")
	}
	if otf.Head = otf.tables[T("head")].Self().AsHead(); otf.Head == nil {
		return errFontFormat("head table unusable")
	}
	otf.MaxP = typed(otf, "maxp", TableSelf.AsMaxP)
	otf.HHea = typed(otf, "hhea", TableSelf.AsHHea)
	otf.HMtx = typed(otf, "hmtx", TableSelf.AsHMtx)
	otf.VHea = typed(otf, "vhea", TableSelf.AsVHea)
	otf.VMtx = typed(otf, "vmtx", TableSelf.AsVMtx)
	otf.OS2 = typed(otf, "OS/2", TableSelf.AsOS2)
	otf.Post = typed(otf, "post", TableSelf.AsPost)
	otf.Name = typed(otf, "name", TableSelf.AsName)
	numGlyphs := otf.NumGlyphs()
	otf.CMap.numGlyphs = numGlyphs
	if otf.HHea != nil && otf.HMtx != nil {
		if err := otf.HMtx.parseAll(otf.HMtx.data, numGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
			issues.report(T("hmtx"), "Metrics", SeverityMajor, otf.HMtx.offset, "%v", err)
			otf.HMtx = nil
		}
	}
	if otf.VHea != nil && otf.VMtx != nil {
		if err := otf.VMtx.parseAll(otf.VMtx.data, numGlyphs, otf.VHea.NumOfLongVerMetrics); err != nil {
			issues.report(T("vmtx"), "Metrics", SeverityMajor, otf.VMtx.offset, "%v", err)
			otf.VMtx = nil
		}
	}
	return nil
}

func typed[X any](otf *Font, tag string, as func(TableSelf) *X) *X {
	if t := otf.tables[T(tag)]; t != nil {
		return as(t.Self())
	}
	return nil
}

// parseTable dispatches on the tag. Tables which fail to parse are kept
// in generic form and recorded as major issues.
func parseTable(t Tag, b binarySegm, offset, size uint32, issues *issueLog) Table {
	var table Table
	var err error
	switch t {
	case T("cmap"):
		table, err = parseCMap(t, b, offset, size, issues)
	case T("head"):
		table, err = parseHead(t, b, offset, size)
	case T("hhea"):
		table, err = parseHHea(t, b, offset, size)
	case T("hmtx"):
		table = newHMtxTable(t, b, offset, size)
	case T("maxp"):
		table, err = parseMaxP(t, b, offset, size)
	case T("name"):
		table, err = parseName(t, b, offset, size)
	case T("OS/2"):
		table, err = parseOS2(t, b, offset, size)
	case T("post"):
		table, err = parsePost(t, b, offset, size)
	case T("vhea"):
		table, err = parseVHea(t, b, offset, size)
	case T("vmtx"):
		table = newVMtxTable(t, b, offset, size)
	default:
		tracer().Debugf("font contains table (%s), will not be interpreted", t)
		return newTable(t, b, offset, size)
	}
	if err != nil {
		issues.report(t, "Table", SeverityMajor, offset, "%v", err)
		return newTable(t, b, offset, size)
	}
	return table
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < 54 {
		return nil, errFontFormat(fmt.Sprintf("head table too small: %d bytes (need 54)", size))
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)
	t.UnitsPerEm, _ = b.u16(18)
	t.XMin, _ = b.i16(36)
	t.YMin, _ = b.i16(38)
	t.XMax, _ = b.i16(40)
	t.YMax, _ = b.i16(42)
	t.MacStyle, _ = b.u16(44)
	// IndexToLocFormat is 0 for short offsets, 1 for long
	t.IndexToLocFormat, _ = b.u16(50)
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

// Fonts with CFF data must use Version 0.5 of this table, specifying only the
// numGlyphs field.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < 6 {
		return nil, errFontFormat("maxp table too small")
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}

// --- HHea / VHea tables ----------------------------------------------------

func parseHHea(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < 36 {
		return nil, errFontFormat(fmt.Sprintf("hhea table too small: %d bytes (need 36)", size))
	}
	t := newHHeaTable(tag, b, offset, size)
	t.Ascender, _ = b.i16(4)
	t.Descender, _ = b.i16(6)
	t.LineGap, _ = b.i16(8)
	t.AdvanceWidthMax, _ = b.u16(10)
	n, _ := b.u16(34)
	t.NumberOfHMetrics = int(n)
	return t, nil
}

// 'vhea' shares the layout of 'hhea'.
func parseVHea(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < 36 {
		return nil, errFontFormat(fmt.Sprintf("vhea table too small: %d bytes (need 36)", size))
	}
	t := newVHeaTable(tag, b, offset, size)
	t.Ascender, _ = b.i16(4)
	t.Descender, _ = b.i16(6)
	t.LineGap, _ = b.i16(8)
	t.AdvanceHeightMax, _ = b.u16(10)
	n, _ := b.u16(34)
	t.NumOfLongVerMetrics = int(n)
	return t, nil
}

// --- OS/2 table ------------------------------------------------------------

// os2MinSize is the size of an OS/2 table version 0 as written by Apple
// (up to usWinDescent). Shorter tables are not accepted.
const os2MinSize = 78

func parseOS2(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < os2MinSize {
		return nil, errFontFormat(fmt.Sprintf("OS/2 table too small: %d bytes (need %d)", size, os2MinSize))
	}
	t := newOS2Table(tag, b, offset, size)
	t.Version = b.U16(0)
	t.XAvgCharWidth = int16(b.U16(2))
	t.WeightClass = b.U16(4)
	t.WidthClass = b.U16(6)
	t.FsType = b.U16(8)
	t.StrikeoutSize = int16(b.U16(26))
	t.StrikeoutPosition = int16(b.U16(28))
	t.FamilyClass = int16(b.U16(30))
	copy(t.Panose[:], b[32:42])
	for i := range t.UnicodeRange {
		t.UnicodeRange[i] = b.U32(42 + 4*i)
	}
	t.VendorID = MakeTag(b[58:62])
	t.FsSelection = b.U16(62)
	t.FirstCharIndex = b.U16(64)
	t.LastCharIndex = b.U16(66)
	t.TypoAscender = int16(b.U16(68))
	t.TypoDescender = int16(b.U16(70))
	t.TypoLineGap = int16(b.U16(72))
	t.WinAscent = b.U16(74)
	t.WinDescent = b.U16(76)
	if t.Version >= 1 && size >= 86 {
		t.CodePageRange1 = b.U32(78)
		t.CodePageRange2 = b.U32(82)
	}
	return t, nil
}

// --- Post table ------------------------------------------------------------

func parsePost(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < 32 {
		return nil, errFontFormat(fmt.Sprintf("post table too small: %d bytes (need 32)", size))
	}
	t := newPostTable(tag, b, offset, size)
	t.Format = b.U32(0)
	t.ItalicAngle = int32(b.U32(4))
	t.UnderlinePosition = int16(b.U16(8))
	t.UnderlineThickness = int16(b.U16(10))
	t.IsFixedPitch = b.U32(12)
	return t, nil
}
