package otresolve

import (
	"errors"
	"fmt"

	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otclass"
	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otface"
)

// MaxFaces is the capacity of the fallback chain of a Font.
const MaxFaces = 10

var (
	// ErrChainFull is returned when a face is to be added to a full fallback chain.
	ErrChainFull = errors.New("fallback chain is full")
	// ErrNoFace is returned when the selector has no face for a request.
	ErrNoFace = errors.New("no font face available")
)

// Desc describes a logical font. Desc values are comparable and may be used
// as map keys.
type Desc struct {
	Family   string
	Bold     int             // requested weight, 400 is regular, 700 is bold
	Italic   int             // italic strength, 0 is upright, 100 is italic
	Charset  otclass.Charset // target legacy charset
	Vertical bool            // vertical writing
}

// Source locates a font face.
type Source struct {
	Path           string             // font file, or a name for stream sources
	Stream         *otface.FontStream // if set, face data is read from the stream
	Index          int                // face index; negative if only the PostScript name is known
	PostScriptName string
	UID            int // identifies the face across requests
}

// Selector finds font faces for logical fonts.
//
// SelectFace returns a face for desc which has a glyph for code, or false
// if there is none. For code 0 any face matching desc will do.
type Selector interface {
	SelectFace(desc Desc, code rune) (Source, bool)
}

type resolvedFace struct {
	face  *otface.Face
	uid   int
	class otclass.Classification
}

// Font is a logical font together with its chain of resolved faces.
type Font struct {
	desc     Desc
	selector Selector
	faces    []resolvedFace
	size     float64
}

// New creates a font for desc, asking selector for the first face of the
// fallback chain. It fails if no face can be added.
func New(selector Selector, desc Desc) (*Font, error) {
	f := &Font{desc: desc, selector: selector}
	if _, err := f.addFace(0); err != nil {
		return nil, fmt.Errorf("cannot create font for %q: %w", desc.Family, err)
	}
	return f, nil
}

// addFace asks the selector for a face having a glyph for code and appends
// it to the chain. If the face is in the chain already, its position is
// returned.
func (f *Font) addFace(code rune) (int, error) {
	if len(f.faces) >= MaxFaces {
		return -1, ErrChainFull
	}
	src, ok := f.selector.SelectFace(f.desc, code)
	if !ok {
		return -1, fmt.Errorf("%w for code %#x", ErrNoFace, code)
	}
	for i, rf := range f.faces {
		if rf.uid == src.UID {
			tracer().Infof("got a font face that already is available, skipping")
			return i, nil
		}
	}
	var face *otface.Face
	var err error
	if src.Stream != nil {
		face, err = otface.OpenStream(src.Path, *src.Stream, src.Index, src.PostScriptName)
	} else {
		face, err = otface.Open(src.Path, src.Index, src.PostScriptName)
	}
	if err != nil {
		return -1, err
	}
	if f.size > 0 {
		face.SetSize(f.size)
	}
	if face.Shaper() == nil {
		tracer().Infof("font %q has no shaping font object", src.Path)
	}
	f.faces = append(f.faces, resolvedFace{
		face:  face,
		uid:   src.UID,
		class: otclass.Classify(face),
	})
	return len(f.faces) - 1, nil
}

// lookup finds the glyph for code in the selected charmap of face.
func lookup(face *otface.Face, code rune) ot.GlyphIndex {
	if mb := otcmap.IndexMagic(face.SelectedCharmap(), code); mb != 0 {
		return face.CharIndex(mb)
	}
	return 0
}

// GlyphIndex finds a face with a glyph for code and returns the position of
// the face in the fallback chain together with the glyph index.
//
// Control characters below U+0020 always resolve to glyph 0 of face 0. If no
// face of the chain has a glyph for code, one more face is added to the
// chain. When even this face lacks the glyph, all of its charmaps are tried
// in turn. If everything fails, glyph 0 is returned.
func (f *Font) GlyphIndex(code rune) (int, ot.GlyphIndex) {
	if code < 0x20 || len(f.faces) == 0 {
		return 0, 0
	}
	for i, rf := range f.faces {
		if glyph := lookup(rf.face, code); glyph != 0 {
			return i, glyph
		}
	}
	tracer().Infof("glyph %#x not found, selecting one more font for (%s, %d, %d)",
		code, f.desc.Family, f.desc.Bold, f.desc.Italic)
	index, err := f.addFace(code)
	if err != nil {
		tracer().Infof("no face added for glyph %#x: %v", code, err)
		return 0, 0
	}
	face := f.faces[index].face
	glyph := lookup(face, code)
	if glyph == 0 && face.NumCharmaps() > 0 {
		tracer().Errorf("glyph %#x not found, broken font? Trying all charmaps", code)
		for i := 0; i < face.NumCharmaps(); i++ {
			_ = face.SetCharmap(i)
			if glyph = lookup(face, code); glyph != 0 {
				break
			}
		}
	}
	if glyph == 0 {
		tracer().Errorf("glyph %#x not found in font for (%s, %d, %d)",
			code, f.desc.Family, f.desc.Bold, f.desc.Italic)
	}
	return index, glyph
}

// Desc returns the descriptor of the font.
func (f *Font) Desc() Desc {
	return f.desc
}

// NumFaces returns the length of the fallback chain.
func (f *Font) NumFaces() int {
	return len(f.faces)
}

// Face returns the face at position i of the fallback chain.
func (f *Font) Face(i int) *otface.Face {
	if i < 0 || i >= len(f.faces) {
		return nil
	}
	return f.faces[i].face
}

// UID returns the uid of the face at position i, or -1.
func (f *Font) UID(i int) int {
	if i < 0 || i >= len(f.faces) {
		return -1
	}
	return f.faces[i].uid
}

// Classification returns the legacy classification of the face at position i.
func (f *Font) Classification(i int) (otclass.Classification, bool) {
	if i < 0 || i >= len(f.faces) {
		return otclass.Classification{}, false
	}
	return f.faces[i].class, true
}

// Close closes all faces of the font.
func (f *Font) Close() {
	for _, rf := range f.faces {
		rf.face.Close()
	}
	f.faces = nil
}
