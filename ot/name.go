package ot

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// --- Name table ------------------------------------------------------------

// Name IDs frequently used for font selection.
const (
	NameFamily            uint16 = 1
	NameSubfamily         uint16 = 2
	NameFull              uint16 = 4
	NamePostScript        uint16 = 6
	NameTypographicFamily uint16 = 16
)

// NameTable holds the name records of a font. Strings are decoded on demand.
type NameTable struct {
	tableBase
	Records []NameRecord
}

func newNameTable(tag Tag, b binarySegm, offset, size uint32) *NameTable {
	t := &NameTable{tableBase: makeBase(tag, b, offset, size)}
	t.self = t
	return t
}

// NameRecord is an entry of table 'name'.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	raw        binarySegm
}

// Decode returns the string value of a name record. Only Unicode and
// Windows records with UTF-16BE strings, and Mac Roman records, can be
// decoded.
func (r NameRecord) Decode() (string, error) {
	var enc encoding.Encoding
	switch {
	case r.PlatformID == PlatformUnicode:
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case r.PlatformID == PlatformMicrosoft && (r.EncodingID == EncodingMSSymbol ||
		r.EncodingID == EncodingMSUnicodeBMP || r.EncodingID == EncodingMSUCS4):
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case r.PlatformID == PlatformMacintosh && r.EncodingID == EncodingMacRoman:
		enc = charmap.Macintosh
	default:
		return "", fmt.Errorf("name record with unsupported encoding %d/%d", r.PlatformID, r.EncodingID)
	}
	s, err := enc.NewDecoder().Bytes(r.raw)
	if err != nil {
		return "", fmt.Errorf("decoding name record %d: %w", r.NameID, err)
	}
	return string(s), nil
}

// Lookup returns the first decodable string for a name ID, preferring
// Windows records over Unicode and Macintosh ones.
func (t *NameTable) Lookup(nameID uint16) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, platform := range []uint16{PlatformMicrosoft, PlatformUnicode, PlatformMacintosh} {
		for _, r := range t.Records {
			if r.NameID != nameID || r.PlatformID != platform {
				continue
			}
			if s, err := r.Decode(); err == nil && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func parseName(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if len(b) < 6 {
		return nil, errFontFormat("name section corrupt")
	}
	N := int(b.U16(2))
	strOffset := int(b.U16(4))
	if strOffset > len(b) {
		return nil, errFontFormat(fmt.Sprintf("name table string offset %d exceeds table size %d", strOffset, len(b)))
	}
	recsSize, err := checkedMulInt(12, N)
	if err != nil || 6+recsSize > len(b) {
		return nil, errFontFormat("name section corrupt")
	}
	t := newNameTable(tag, b, offset, size)
	strbuf := b[strOffset:]
	for i := 0; i < N; i++ {
		rec := b[6+12*i:]
		length, off := int(u16(rec[8:])), int(u16(rec[10:]))
		if off+length > len(strbuf) {
			tracer().Debugf("name record %d out of bounds", i)
			continue
		}
		t.Records = append(t.Records, NameRecord{
			PlatformID: u16(rec),
			EncodingID: u16(rec[2:]),
			LanguageID: u16(rec[4:]),
			NameID:     u16(rec[6:]),
			raw:        strbuf[off : off+length],
		})
	}
	return t, nil
}
