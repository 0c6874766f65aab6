/*
Package subfont resolves logical fonts to font faces and extracts glyph
outlines for subtitle rendering.

There is a certain confusion with the nomenclature of fonts. We will stick
to the following definitions:

▪︎ A "logical font" is what a subtitle style asks for: a family name, a
weight, an italic strength and a legacy charset. An example is
"Arial, bold, ANSI".

▪︎ A "face" is a single font program from a font file or collection (*.ttc).
An example is "Arial Bold" from arialbd.ttf.

▪︎ A "fallback chain" is the list of faces a logical font draws its glyphs
from. The first face is the one best matching the logical font. More faces
are appended whenever a character is missing from all faces so far, up to
a limit of ten.

A Library ties these together: it discovers faces (package otdiscover),
builds logical fonts with their fallback chains (package otresolve) and
remembers them, so every logical font is built only once.

# Configuration

NewLibrary reads the keys of package otdiscover plus

	hinting    one of none, light, normal or native (default none)

# Concurrency

A Library may be used from multiple goroutines. The fonts it hands out may
not; clients have to serialize access to a single Font.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package subfont

import (
	"errors"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/subfont/otdiscover"
	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otresolve"
)

// tracer writes to trace with key 'subfont'
func tracer() tracing.Trace {
	return tracing.Select("subfont")
}

// ErrLibraryClosed is returned for requests to a closed library.
var ErrLibraryClosed = errors.New("font library is closed")

// Library is a cache of logical fonts on top of a font provider.
type Library struct {
	mu       sync.Mutex
	provider otdiscover.Provider
	selector *otdiscover.Selector
	hinting  otface.Hinting
	fonts    map[otresolve.Desc]*otresolve.Font
	closed   bool
}

// NewLibrary creates a library with a system font provider configured by
// conf. conf may be nil.
func NewLibrary(conf schuko.Configuration) (*Library, error) {
	hinting := otface.HintingNone
	if conf != nil && conf.IsSet("hinting") {
		var err error
		if hinting, err = otface.ParseHinting(conf.GetString("hinting")); err != nil {
			return nil, err
		}
	}
	return NewLibraryWithProvider(otdiscover.NewSystemProvider(conf), hinting), nil
}

// NewLibraryWithProvider creates a library for the faces of provider.
// The library takes ownership of provider.
func NewLibraryWithProvider(provider otdiscover.Provider, hinting otface.Hinting) *Library {
	return &Library{
		provider: provider,
		selector: otdiscover.NewSelector(provider),
		hinting:  hinting,
		fonts:    make(map[otresolve.Desc]*otresolve.Font),
	}
}

// Hinting returns the hinting mode glyphs should be loaded with.
func (lib *Library) Hinting() otface.Hinting {
	return lib.hinting
}

// Provider returns the font provider of the library.
func (lib *Library) Provider() otdiscover.Provider {
	return lib.provider
}

// Font returns the logical font for desc, creating it on first request.
func (lib *Library) Font(desc otresolve.Desc) (*otresolve.Font, error) {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if lib.closed {
		return nil, ErrLibraryClosed
	}
	if f, ok := lib.fonts[desc]; ok {
		return f, nil
	}
	f, err := otresolve.New(lib.selector, desc)
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	tracer().Debugf("new font for (%s, %d, %d)", desc.Family, desc.Bold, desc.Italic)
	lib.fonts[desc] = f
	return f, nil
}

// AddFont makes a font in memory available, e.g. a font attached to a
// subtitle file. It is an error if the provider cannot index memory fonts.
func (lib *Library) AddFont(name string, data []byte) error {
	sp, ok := lib.provider.(*otdiscover.SystemProvider)
	if !ok {
		return errors.New("font provider does not accept memory fonts")
	}
	_, err := sp.AddFont(name, data)
	return err
}

// Close closes all fonts of the library and its provider.
func (lib *Library) Close() {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if lib.closed {
		return
	}
	lib.closed = true
	for desc, f := range lib.fonts {
		f.Close()
		delete(lib.fonts, desc)
	}
	lib.provider.Close()
}
