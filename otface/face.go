package otface

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-text/typesetting/font"
	gotext "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otoutline"
	"github.com/npillmayer/subfont/otquery"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	// ErrFaceNotFound is returned if a font file does not contain the requested face.
	ErrFaceNotFound = errors.New("font face not found")
	// ErrNoCharmap is returned when selecting a charmap the face does not have.
	ErrNoCharmap = errors.New("no such charmap")
	// ErrNoSize is returned when loading glyphs from a face without a size.
	ErrNoSize = errors.New("face size not set")
	// ErrNoOutlines is returned for glyphs of faces no outline loader accepts.
	ErrNoOutlines = errors.New("no outline loader for face")
	// ErrClosed is returned for operations on a closed face.
	ErrClosed = errors.New("face is closed")
)

// FontStream provides font data from memory or any other source.
//
// Read copies font data starting at offset into buf and returns the number
// of bytes copied. Called with a nil buffer and offset 0, it returns the
// total size of the font data. Close is optional; it is called exactly once,
// either when opening the face fails or when the face is closed.
type FontStream struct {
	Read  func(buf []byte, offset int64) int64
	Close func()
}

// MemoryStream returns a stream serving data. It has no close hook.
func MemoryStream(data []byte) FontStream {
	return FontStream{
		Read: func(buf []byte, offset int64) int64 {
			if buf == nil {
				return int64(len(data))
			}
			if offset < 0 || offset >= int64(len(data)) {
				return 0
			}
			return int64(copy(buf, data[offset:]))
		},
	}
}

// Size is the size a face is set to.
type Size struct {
	Size   float64       // requested size in pixels
	YScale int64         // 16.16 scale from font units to 26.6 pixels
	PPEM   fixed.Int26_6 // resulting pixels per em
}

// Face is a single font face ready for glyph lookup.
type Face struct {
	name     string
	index    int
	data     []byte
	otf      *ot.Font
	outlines *sfnt.Font // nil if x/image does not accept the font
	shaper   *font.Face // nil if go-text does not accept the font
	charmap  int
	metrics  otquery.FontMetricsInfo
	size     Size
	buf      sfnt.Buffer
	release  func()
	closed   bool
}

// Open opens face number index of the font file at path.
//
// If index is negative, the face is identified by its PostScript name
// psname. Font files with a single face are accepted without checking the
// name, as such fonts may not carry a valid PostScript name at all.
func Open(path string, index int, psname string) (*Face, error) {
	if fi, err := os.Stat(path); err == nil {
		if err = ot.CheckFontSize(fi.Size()); err != nil {
			tracer().Errorf("error opening font %q: %v", path, err)
			return nil, fmt.Errorf("font %q: %w", path, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("error opening font %q: %v", path, err)
		return nil, err
	}
	return open(path, data, index, psname, nil)
}

// OpenStream opens a face from a font stream. name is used for diagnostics
// only. Index and psname are interpreted as for Open.
//
// The stream's Close function is called if opening fails. Otherwise it is
// called when the face is closed.
func OpenStream(name string, stream FontStream, index int, psname string) (*Face, error) {
	release := func() {
		if stream.Close != nil {
			stream.Close()
		}
	}
	if stream.Read == nil {
		release()
		return nil, fmt.Errorf("font stream %q is not readable", name)
	}
	size := stream.Read(nil, 0)
	if err := ot.CheckFontSize(size); err != nil {
		release()
		tracer().Errorf("error opening font %q: %v", name, err)
		return nil, fmt.Errorf("font stream %q: %w", name, err)
	}
	data := make([]byte, size)
	if n := stream.Read(data, 0); n != size {
		release()
		tracer().Errorf("error opening font %q: read %d of %d bytes", name, n, size)
		return nil, fmt.Errorf("font stream %q: short read", name)
	}
	face, err := open(name, data, index, psname, stream.Close)
	if err != nil {
		release()
		return nil, err
	}
	return face, nil
}

func open(name string, data []byte, index int, psname string, release func()) (*Face, error) {
	offsets, err := ot.ParseCollection(data)
	if err != nil {
		tracer().Errorf("error opening font %q: %v", name, err)
		return nil, err
	}
	if index >= 0 {
		if index >= len(offsets) {
			tracer().Errorf("error opening font %q: no face %d", name, index)
			return nil, fmt.Errorf("%w: %q has no face %d", ErrFaceNotFound, name, index)
		}
		otf, err := ot.ParseAt(data, offsets[index])
		if err != nil {
			tracer().Errorf("error opening font %q, face %d: %v", name, index, err)
			return nil, err
		}
		return newFace(name, data, index, otf, release), nil
	}
	for i, offset := range offsets {
		otf, err := ot.ParseAt(data, offset)
		if err != nil {
			tracer().Errorf("error opening font %q, face %d: %v", name, i, err)
			return nil, err
		}
		if i == 0 && len(offsets) == 1 {
			return newFace(name, data, 0, otf, release), nil
		}
		if psname == "" {
			break
		}
		if ps, ok := otquery.PostScriptName(otf).Unwrap(); ok && ps == psname {
			return newFace(name, data, i, otf, release), nil
		}
	}
	tracer().Errorf("failed to find font %q (%s) at unknown index", name, psname)
	return nil, fmt.Errorf("%w: no face %q in %q", ErrFaceNotFound, psname, name)
}

func newFace(name string, data []byte, index int, otf *ot.Font, release func()) *Face {
	f := &Face{
		name:    name,
		index:   index,
		data:    data,
		otf:     otf,
		charmap: otcmap.Select(otf.CMap.Subtables),
		metrics: otquery.NormalizedMetrics(otf),
		release: release,
	}
	coll, err := sfnt.ParseCollection(data)
	if err == nil {
		f.outlines, err = coll.Font(index)
	}
	if err != nil {
		tracer().Infof("font %q, face %d: outline loader unavailable: %v", name, index, err)
		f.outlines = nil
	}
	if f.shaper, err = shapingFace(data, index); err != nil {
		tracer().Infof("font %q, face %d: shaping font unavailable: %v", name, index, err)
	}
	if f.outlines == nil && f.shaper == nil {
		tracer().Errorf("font %q, face %d: no glyph outlines available", name, index)
	}
	return f
}

func shapingFace(data []byte, index int) (*font.Face, error) {
	loaders, err := gotext.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if index >= len(loaders) {
		return nil, fmt.Errorf("collection has %d faces only", len(loaders))
	}
	ft, err := font.NewFont(loaders[index])
	if err != nil {
		return nil, err
	}
	return font.NewFace(ft), nil
}

// Name returns the file path or stream name the face has been opened from.
func (f *Face) Name() string {
	return f.name
}

// Index returns the position of the face in its font file.
func (f *Face) Index() int {
	return f.index
}

// Font returns the parsed tables of the face.
func (f *Face) Font() *ot.Font {
	return f.otf
}

// Shaper returns the shaping-engine font object of the face, or nil if the
// shaping engine rejected the font.
func (f *Face) Shaper() *font.Face {
	return f.shaper
}

// IsPostScript is true for faces with CFF outlines.
func (f *Face) IsPostScript() bool {
	return f.otf != nil && f.otf.IsCFF()
}

// PostScriptName returns the PostScript name of the face, if any.
func (f *Face) PostScriptName() ot.Option[string] {
	return otquery.PostScriptName(f.otf)
}

// Metrics returns the normalized vertical metrics of the face in font units.
func (f *Face) Metrics() otquery.FontMetricsInfo {
	return f.metrics
}

// --- Charmaps --------------------------------------------------------------

// NumCharmaps returns the number of cmap sub-tables of the face.
func (f *Face) NumCharmaps() int {
	if f.otf == nil || f.otf.CMap == nil {
		return 0
	}
	return len(f.otf.CMap.Subtables)
}

// Charmap returns the position of the selected charmap, or -1.
func (f *Face) Charmap() int {
	return f.charmap
}

// SelectedCharmap returns the selected cmap sub-table, or nil.
func (f *Face) SelectedCharmap() *ot.CMapSubtable {
	if f.charmap < 0 || f.charmap >= f.NumCharmaps() {
		return nil
	}
	return &f.otf.CMap.Subtables[f.charmap]
}

// SetCharmap selects the charmap at position i.
func (f *Face) SetCharmap(i int) error {
	if i < 0 || i >= f.NumCharmaps() {
		return fmt.Errorf("%w: %d of %d", ErrNoCharmap, i, f.NumCharmaps())
	}
	f.charmap = i
	return nil
}

// CharIndex looks up a character code in the selected charmap. The code has
// to be in the encoding of the charmap (see otcmap.IndexMagic). It returns 0
// if the face has no glyph for the code.
func (f *Face) CharIndex(code uint32) ot.GlyphIndex {
	if f.charmap < 0 || f.charmap >= f.NumCharmaps() {
		return 0
	}
	return f.otf.CMap.Lookup(f.charmap, code)
}

// --- Size ------------------------------------------------------------------

// SetSize sets the face to size pixels, mapping the distance between the
// normalized ascender and descender onto size.
func (f *Face) SetSize(size float64) {
	h := int64(f.metrics.Height)
	if h <= 0 {
		tracer().Infof("font %q has no usable height, scaling by em", f.name)
		h = int64(f.otf.UnitsPerEm())
	}
	yScale := otoutline.DivFix(int64(math.Round(size*64)), h)
	f.size = Size{
		Size:   size,
		YScale: yScale,
		PPEM:   fixed.Int26_6(otoutline.MulFix(int64(f.otf.UnitsPerEm()), yScale)),
	}
}

// Size returns the current size of the face. The zero value means the size
// has not been set.
func (f *Face) Size() Size {
	return f.size
}

// Close releases the face and calls the close hook of its stream, if any.
// Calling Close more than once has no effect.
func (f *Face) Close() {
	if f == nil || f.closed {
		return
	}
	f.closed = true
	f.outlines, f.shaper, f.data = nil, nil, nil
	if f.release != nil {
		f.release()
	}
}
