package otdiscover

import (
	"sort"
	"strings"

	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otresolve"
)

// Selector selects font faces from a provider.
type Selector struct {
	provider Provider
}

var _ otresolve.Selector = (*Selector)(nil)

// NewSelector creates a selector for the faces of provider.
func NewSelector(provider Provider) *Selector {
	return &Selector{provider: provider}
}

// SelectFace returns the face best matching desc which has a glyph for
// code. Candidates are taken from the requested family first, then from
// its substitutions, then from the provider's fallback family. A leading
// '@' in the family name, which requests vertical writing, is ignored.
func (s *Selector) SelectFace(desc otresolve.Desc, code rune) (otresolve.Source, bool) {
	family := strings.TrimPrefix(strings.TrimSpace(desc.Family), "@")
	if fi, ok := s.best(family, desc, code); ok {
		return source(fi), true
	}
	for _, subst := range s.provider.Substitutions(family) {
		if fi, ok := s.best(subst, desc, code); ok {
			tracer().Debugf("substituted %q for %q", subst, family)
			return source(fi), true
		}
	}
	if fallback := s.provider.Fallback(family, code); fallback != "" {
		if fi, ok := s.best(fallback, desc, code); ok {
			tracer().Infof("using fallback family %q for (%s, %d, %d), code %#x",
				fallback, family, desc.Bold, desc.Italic, code)
			return source(fi), true
		}
	}
	tracer().Infof("no font face for (%s, %d, %d), code %#x", family, desc.Bold, desc.Italic, code)
	return otresolve.Source{}, false
}

// best returns the face of family most similar to desc having a glyph for code.
func (s *Selector) best(family string, desc otresolve.Desc, code rune) (FontInfo, bool) {
	candidates := s.provider.MatchFonts(family)
	sort.SliceStable(candidates, func(i, j int) bool {
		return Similarity(candidates[i], desc) < Similarity(candidates[j], desc)
	})
	for _, fi := range candidates {
		if s.provider.CheckGlyph(fi, code) {
			return fi, true
		}
	}
	return FontInfo{}, false
}

// Similarity measures the distance of a face from a font description.
// Lower values are better, 0 is a perfect match. A requested weight of 0
// counts as 400 and a weight of 1 as 700.
func Similarity(fi FontInfo, desc otresolve.Desc) int {
	weight := desc.Bold
	switch weight {
	case 0:
		weight = 400
	case 1:
		weight = 700
	}
	return abs(fi.Weight-weight) + abs(fi.Slant()-desc.Italic)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func source(fi FontInfo) otresolve.Source {
	src := otresolve.Source{
		Path:           fi.Path,
		Index:          fi.Index,
		PostScriptName: fi.PostScriptName,
		UID:            fi.UID,
	}
	if fi.Data != nil {
		stream := otface.MemoryStream(fi.Data)
		src.Stream = &stream
	}
	return src
}
