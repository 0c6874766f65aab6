package otcmap

import (
	"github.com/npillmayer/subfont/ot"
)

// Select chooses the charmap to use for glyph lookup among the cmap
// sub-tables of a face and returns its position, or -1 if the face has no
// charmaps at all.
//
// Microsoft charmaps are preferred: a full Unicode (UCS-4) sub-table is taken
// immediately, else the first BMP Unicode sub-table, else the first
// Microsoft sub-table of any other encoding. If the face has no Microsoft
// charmap, the charmap a font engine selects by default is kept (see
// SelectDefault). If there is none of these either, the first sub-table is
// used.
func Select(subtables []ot.CMapSubtable) int {
	msCmap, msUnicode := -1, -1
	for i, st := range subtables {
		if st.PlatformID != ot.PlatformMicrosoft {
			continue
		}
		switch st.EncodingID {
		case ot.EncodingMSUCS4:
			return i
		case ot.EncodingMSUnicodeBMP:
			if msUnicode < 0 {
				msUnicode, msCmap = i, i
			}
		default:
			if msCmap < 0 {
				msCmap = i
			}
		}
	}
	if msCmap >= 0 {
		return msCmap
	}
	if def := SelectDefault(subtables); def >= 0 {
		return def
	}
	if len(subtables) == 0 {
		tracer().Errorf("font face with no charmaps")
		return -1
	}
	tracer().Errorf("no charmap autodetected, trying the first one")
	return 0
}

// SelectDefault returns the position of the charmap a font engine selects
// when opening a face, or -1. Sub-tables are searched from the end of the
// list, as full-repertoire tables usually come last. A UCS-4 sub-table wins
// over any other Unicode sub-table.
func SelectDefault(subtables []ot.CMapSubtable) int {
	for i := len(subtables) - 1; i >= 0; i-- {
		if isUCS4(subtables[i]) {
			return i
		}
	}
	for i := len(subtables) - 1; i >= 0; i-- {
		if subtables[i].Format != 14 && subtables[i].IsUnicode() {
			return i
		}
	}
	return -1
}

func isUCS4(st ot.CMapSubtable) bool {
	switch st.PlatformID {
	case ot.PlatformMicrosoft:
		return st.EncodingID == ot.EncodingMSUCS4
	case ot.PlatformUnicode:
		return st.EncodingID == ot.EncodingUnicode2Full || st.EncodingID == ot.EncodingUnicodeFull13
	}
	return false
}
