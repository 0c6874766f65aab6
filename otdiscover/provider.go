package otdiscover

import (
	"strings"
)

// FontInfo describes a font face known to a provider.
type FontInfo struct {
	UID            int    // unique within a provider
	Path           string // font file, or the name of a memory font
	Index          int    // face index within a collection
	PostScriptName string
	Families       []string
	FullNames      []string
	Weight         int    // 100…900
	Italic         bool   // italic or oblique
	PostScript     bool   // CFF outlines
	Data           []byte // font data of memory fonts, nil for files
}

// Slant returns the slant of a face on the scale of italic strengths.
func (fi FontInfo) Slant() int {
	if fi.Italic {
		return 100
	}
	return 0
}

// Provider is a source of font faces.
type Provider interface {
	// MatchFonts returns the faces with a family name, full name or
	// PostScript name equal to name, ignoring case.
	MatchFonts(name string) []FontInfo
	// CheckGlyph is true if face fi has a glyph for code. Code 0 matches any face.
	CheckGlyph(fi FontInfo, code rune) bool
	// Substitutions returns replacement families for a (generic) family.
	Substitutions(family string) []string
	// Fallback returns a family with a glyph for code, or "".
	Fallback(family string, code rune) string
	// Close releases resources held by the provider.
	Close()
}

// normalize prepares a name for case-insensitive lookup.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
