package ot

// Font represents the internal structure of a TrueType or OpenType font.
// It is used to query properties of a font for font selection and
// classification tasks.
type Font struct {
	Header        *FontHeader
	tables        map[Tag]Table
	CMap          *CMapTable    // 'cmap' is mandatory
	Head          *HeadTable    // 'head' is mandatory
	HHea          *HHeaTable    // typed access to hhea, may be nil
	HMtx          *HMtxTable    // typed access to hmtx, may be nil
	MaxP          *MaxPTable    // typed access to maxp, may be nil
	OS2           *OS2Table     // typed access to OS/2, may be nil
	Post          *PostTable    // typed access to post, may be nil
	VHea          *VHeaTable    // typed access to vhea, may be nil
	VMtx          *VMtxTable    // typed access to vmtx, may be nil
	Name          *NameTable    // typed access to name, may be nil
	issues        issueLog      // table defects found during parsing
}

// FontHeader is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
// If the font file is a font collection, the beginning of the table directory
// for each font is indicated in the collection header and recorded as DirOffset.
//
// Fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. Fonts containing CFF data use 0x4F54544F ('OTTO').
type FontHeader struct {
	FontType   uint32
	TableCount uint16
	DirOffset  uint32
}

// IsCFF reports whether the font contains CFF outlines ('OTTO' font type).
func (otf *Font) IsCFF() bool {
	return otf != nil && otf.Header != nil && otf.Header.FontType == 0x4f54544f
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// For example to receive the `OS/2` table, clients may call
//
//	os2 := otf.Table(ot.T("OS/2")).Self().AsOS2()
//
// Table tag names are case-sensitive, following the names in the OpenType specification.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// UnitsPerEm returns the design units per em from table 'head'.
func (otf *Font) UnitsPerEm() uint16 {
	if otf == nil || otf.Head == nil {
		return 0
	}
	return otf.Head.UnitsPerEm
}

// NumGlyphs returns the number of glyphs from table 'maxp', or 0.
func (otf *Font) NumGlyphs() int {
	if otf == nil || otf.MaxP == nil {
		return 0
	}
	return otf.MaxP.NumGlyphs
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is a 4-byte identifier of a table, stored as a big-endian integer.
type Tag uint32

// MakeTag creates a Tag from 4 bytes.
// If b is shorter or longer, it will be silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the sfnt font tables.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	t := &genericTable{tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	},
	}
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
	self   any
}

func makeBase(tag Tag, b binarySegm, offset, size uint32) tableBase {
	return tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
}

// Extent returns offset and byte size of this table within the font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	if tself.tableBase == nil {
		return 0
	}
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsCMap returns this table as a cmap table, or nil.
func (tself TableSelf) AsCMap() *CMapTable {
	if k, ok := safeSelf(tself).(*CMapTable); ok {
		return k
	}
	return nil
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if k, ok := safeSelf(tself).(*HeadTable); ok {
		return k
	}
	return nil
}

// AsHHea returns this table as a hhea table, or nil.
func (tself TableSelf) AsHHea() *HHeaTable {
	if k, ok := safeSelf(tself).(*HHeaTable); ok {
		return k
	}
	return nil
}

// AsHMtx returns this table as a hmtx table, or nil.
func (tself TableSelf) AsHMtx() *HMtxTable {
	if k, ok := safeSelf(tself).(*HMtxTable); ok {
		return k
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable {
	if k, ok := safeSelf(tself).(*MaxPTable); ok {
		return k
	}
	return nil
}

// AsOS2 returns this table as an OS/2 table, or nil.
func (tself TableSelf) AsOS2() *OS2Table {
	if k, ok := safeSelf(tself).(*OS2Table); ok {
		return k
	}
	return nil
}

// AsPost returns this table as a post table, or nil.
func (tself TableSelf) AsPost() *PostTable {
	if k, ok := safeSelf(tself).(*PostTable); ok {
		return k
	}
	return nil
}

// AsVHea returns this table as a vhea table, or nil.
func (tself TableSelf) AsVHea() *VHeaTable {
	if k, ok := safeSelf(tself).(*VHeaTable); ok {
		return k
	}
	return nil
}

// AsVMtx returns this table as a vmtx table, or nil.
func (tself TableSelf) AsVMtx() *VMtxTable {
	if k, ok := safeSelf(tself).(*VMtxTable); ok {
		return k
	}
	return nil
}

// AsName returns this table as a name table, or nil.
func (tself TableSelf) AsName() *NameTable {
	if k, ok := safeSelf(tself).(*NameTable); ok {
		return k
	}
	return nil
}

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
type HeadTable struct {
	tableBase
	Flags            uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	XMin, YMin       int16  // bounding box for all glyph bounding boxes
	XMax, YMax       int16
	MacStyle         uint16 // bit 0 bold, bit 1 italic
	IndexToLocFormat uint16 // needed to interpret loca table
}

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	Ascender         int16
	Descender        int16
	LineGap          int16
	AdvanceWidthMax  uint16
	NumberOfHMetrics int
}

func newHHeaTable(tag Tag, b binarySegm, offset, size uint32) *HHeaTable {
	t := &HHeaTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// VHeaTable contains information for vertical layout. Its layout mirrors
// table 'hhea'.
type VHeaTable struct {
	tableBase
	Ascender            int16 // vertTypoAscender for version 1.1
	Descender           int16 // vertTypoDescender for version 1.1
	LineGap             int16
	AdvanceHeightMax    uint16
	NumOfLongVerMetrics int
}

func newVHeaTable(tag Tag, b binarySegm, offset, size uint32) *VHeaTable {
	t := &VHeaTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// OS2Table contains the fields of table 'OS/2' which are relevant for
// classification of a font by the legacy Windows text stack.
//
// Code page ranges are only present for table versions ≥ 1 and will be 0 otherwise.
type OS2Table struct {
	tableBase
	Version           uint16
	XAvgCharWidth     int16
	WeightClass       uint16
	WidthClass        uint16
	FsType            uint16
	StrikeoutSize     int16
	StrikeoutPosition int16
	FamilyClass       int16
	Panose            [10]byte
	UnicodeRange      [4]uint32
	VendorID          Tag
	FsSelection       uint16
	FirstCharIndex    uint16
	LastCharIndex     uint16
	TypoAscender      int16
	TypoDescender     int16
	TypoLineGap       int16
	WinAscent         uint16
	WinDescent        uint16
	CodePageRange1    uint32
	CodePageRange2    uint32
}

func newOS2Table(tag Tag, b binarySegm, offset, size uint32) *OS2Table {
	t := &OS2Table{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// PostTable contains PostScript related information of a font.
type PostTable struct {
	tableBase
	Format             uint32 // 16.16 version number, e.g. 0x00020000
	ItalicAngle        int32  // 16.16 fixed
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32 // non-zero for monospaced fonts
}

func newPostTable(tag Tag, b binarySegm, offset, size uint32) *PostTable {
	t := &PostTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// HMtxTable contains metric information for the horizontal layout each of
// the glyphs in the font.
type HMtxTable struct {
	tableBase
	metricsTable
}

func newHMtxTable(tag Tag, b binarySegm, offset, size uint32) *HMtxTable {
	t := &HMtxTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// HMetrics returns the advance width and left side bearing for a glyph.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil {
		return 0, 0, false
	}
	return t.metrics(g)
}

// VMtxTable contains metric information for the vertical layout each of
// the glyphs in the font.
type VMtxTable struct {
	tableBase
	metricsTable
}

func newVMtxTable(tag Tag, b binarySegm, offset, size uint32) *VMtxTable {
	t := &VMtxTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// VMetrics returns the advance height and top side bearing for a glyph.
func (t *VMtxTable) VMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil {
		return 0, 0, false
	}
	return t.metrics(g)
}

// metricsTable decodes the common layout of 'hmtx' and 'vmtx':
// an array of long metric records, followed by an array of side bearings.
// Glyphs beyond the long records share the last advance.
type metricsTable struct {
	NumberOfLongMetrics int
	numGlyphs           int
	longMetrics         []metricRecord
	sideBearings        []int16
}

type metricRecord struct {
	Advance     uint16
	SideBearing int16
}

func (mt *metricsTable) parseAll(data binarySegm, numGlyphs, numberOfLongMetrics int) error {
	if numGlyphs < 0 {
		return errFontFormat("invalid glyph count")
	}
	if numberOfLongMetrics < 0 || numberOfLongMetrics > numGlyphs {
		return errFontFormat("invalid number of long metrics")
	}
	required := numberOfLongMetrics * 4
	if required > len(data) {
		return errFontFormat("metrics table too small")
	}
	mt.longMetrics = make([]metricRecord, numberOfLongMetrics)
	for i := 0; i < numberOfLongMetrics; i++ {
		mt.longMetrics[i] = metricRecord{
			Advance:     data.U16(i * 4),
			SideBearing: int16(data.U16(i*4 + 2)),
		}
	}
	// trailing side bearings are frequently truncated; read what is there
	n := numGlyphs - numberOfLongMetrics
	avail := (len(data) - required) / 2
	if avail < n {
		n = avail
	}
	mt.sideBearings = make([]int16, n)
	for i := 0; i < n; i++ {
		mt.sideBearings[i] = int16(data.U16(required + i*2))
	}
	mt.NumberOfLongMetrics = numberOfLongMetrics
	mt.numGlyphs = numGlyphs
	return nil
}

func (mt *metricsTable) metrics(g GlyphIndex) (uint16, int16, bool) {
	if mt.numGlyphs == 0 || int(g) >= mt.numGlyphs || len(mt.longMetrics) == 0 {
		return 0, 0, false
	}
	if int(g) < len(mt.longMetrics) {
		m := mt.longMetrics[int(g)]
		return m.Advance, m.SideBearing, true
	}
	adv := mt.longMetrics[len(mt.longMetrics)-1].Advance
	i := int(g) - len(mt.longMetrics)
	if i >= len(mt.sideBearings) {
		return adv, 0, true
	}
	return adv, mt.sideBearings[i], true
}
