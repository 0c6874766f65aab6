package otquery

import (
	"iter"
	"slices"

	"github.com/npillmayer/subfont/ot"
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table, in table order.
//
// Records with encodings we cannot decode and records decoding to an empty
// string are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[uint16, string] {
	return func(yield func(uint16, string) bool) {
		if otf == nil || otf.Name == nil {
			return
		}
		for _, rec := range otf.Name.Records {
			s, err := rec.Decode()
			if err != nil {
				tracer().Debugf("skipping name record: %v", err)
				continue
			}
			if s == "" {
				continue
			}
			if !yield(rec.NameID, s) {
				return
			}
		}
	}
}

// PostScriptName returns the PostScript name of a font (name ID 6).
// Windows records are preferred over Macintosh ones.
func PostScriptName(otf *ot.Font) ot.Option[string] {
	if otf == nil {
		return ot.None[string]()
	}
	if s, ok := otf.Name.Lookup(ot.NamePostScript); ok {
		return ot.Some(s)
	}
	return ot.None[string]()
}

// FamilyName returns the preferred family name of a font (name ID 1),
// or an empty string.
func FamilyName(otf *ot.Font) string {
	if otf == nil {
		return ""
	}
	s, _ := otf.Name.Lookup(ot.NameFamily)
	return s
}

// FamilyNames returns all distinct family names of a font, i.e. the
// localized variants of name IDs 1 and 16, in table order.
func FamilyNames(otf *ot.Font) []string {
	return collectNames(otf, ot.NameFamily, ot.NameTypographicFamily)
}

// FullNames returns all distinct full names of a font (name ID 4).
func FullNames(otf *ot.Font) []string {
	return collectNames(otf, ot.NameFull)
}

func collectNames(otf *ot.Font, ids ...uint16) []string {
	var names []string
	for id, s := range NamesRange(otf) {
		if slices.Contains(ids, id) && !slices.Contains(names, s) {
			names = append(names, s)
		}
	}
	return names
}
