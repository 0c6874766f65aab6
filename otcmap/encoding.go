package otcmap

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/subfont/ot"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Encoding is a legacy encoding of a Microsoft cmap sub-table.
type Encoding int

const (
	EncodingNone    Encoding = iota // Unicode or unknown, no conversion
	EncodingSymbol                  // Microsoft symbol
	EncodingSJIS                    // Shift-JIS, Japanese
	EncodingGB2312                  // GB2312, Simplified Chinese
	EncodingBig5                    // Big5, Traditional Chinese
	EncodingWansung                 // Wansung, Korean
	EncodingJohab                   // Johab, Korean
)

var encodingNames = [...]string{"none", "symbol", "sjis", "gb2312", "big5", "wansung", "johab"}

func (enc Encoding) String() string {
	if enc < 0 || int(enc) >= len(encodingNames) {
		return "invalid"
	}
	return encodingNames[enc]
}

// IsMultiByte reports whether codes of this encoding need conversion from
// Unicode to a multi-byte sequence.
func (enc Encoding) IsMultiByte() bool {
	return enc >= EncodingSJIS && enc <= EncodingJohab
}

// EncodingOf returns the legacy encoding for a cmap platform and encoding ID.
// Only sub-tables of the Microsoft platform have a legacy encoding.
func EncodingOf(platform, encodingID uint16) Encoding {
	if platform != ot.PlatformMicrosoft {
		return EncodingNone
	}
	switch encodingID {
	case ot.EncodingMSSymbol:
		return EncodingSymbol
	case ot.EncodingMSShiftJIS:
		return EncodingSJIS
	case ot.EncodingMSPRC:
		return EncodingGB2312
	case ot.EncodingMSBig5:
		return EncodingBig5
	case ot.EncodingMSWansung:
		return EncodingWansung
	case ot.EncodingMSJohab:
		return EncodingJohab
	}
	return EncodingNone
}

// alternates lists code page names per encoding, tried in order. Which of
// them are available differs between conversion backends.
var alternates = map[Encoding][]string{
	EncodingSJIS:    {"CP932", "SHIFT_JIS"},
	EncodingGB2312:  {"CP936", "GBK", "GB18030", "GB2312"},
	EncodingBig5:    {"CP950", "BIG5"},
	EncodingWansung: {"CP949", "EUC-KR"},
	EncodingJohab:   {"CP1361", "JOHAB"},
}

// Windows code pages are not known to the IANA index. x/text implements the
// WHATWG variants of these encodings, which include the Microsoft extensions.
var codepages = map[string]encoding.Encoding{
	"cp932": japanese.ShiftJIS,
	"cp936": simplifiedchinese.GBK,
	"cp949": korean.EUCKR,
	"cp950": traditionalchinese.Big5,
}

// Backend finds an encoder for a code page name. It returns nil if the
// code page is not available.
type Backend func(name string) encoding.Encoding

// DefaultBackend resolves Windows code page names and IANA names with
// golang.org/x/text.
func DefaultBackend(name string) encoding.Encoding {
	if enc, ok := codepages[strings.ToLower(name)]; ok {
		return enc
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil
	}
	return enc // may be nil for names IANA knows but x/text does not implement
}

var backend struct {
	sync.RWMutex
	open Backend
}

// SetBackend replaces the backend used to open encoders and returns the
// previous one. A nil backend restores the default.
func SetBackend(b Backend) Backend {
	backend.Lock()
	defer backend.Unlock()
	prev := backend.open
	if prev == nil {
		prev = DefaultBackend
	}
	backend.open = b
	return prev
}

func openEncoder(enc Encoding) (encoding.Encoding, string) {
	backend.RLock()
	open := backend.open
	backend.RUnlock()
	if open == nil {
		open = DefaultBackend
	}
	for _, name := range alternates[enc] {
		if e := open(name); e != nil {
			return e, name
		}
	}
	return nil, ""
}

// ConvertToMB converts a Unicode code point to a character code of a legacy
// multi-byte encoding. The bytes of the encoded character are packed into
// an integer, big-endian, leading zero bytes omitted.
//
// The result is 0 if no encoder is available for enc, if the code point is
// not representable in enc or if it would need more than two bytes.
func ConvertToMB(enc Encoding, code rune) uint32 {
	if !enc.IsMultiByte() || code <= 0 || !utf8.ValidRune(code) {
		return 0
	}
	e, name := openEncoder(enc)
	if e == nil {
		tracer().Debugf("no encoder available for %s", enc)
		return 0
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], code)
	out, err := e.NewEncoder().Bytes(buf[:n])
	if err != nil || len(out) == 0 || len(out) > 2 {
		tracer().Debugf("cannot convert %#U to %s", code, name)
		return 0
	}
	return packMBCS(out)
}

// packMBCS treats bytes as a big-endian integer.
func packMBCS(b []byte) uint32 {
	var r uint32
	for _, c := range b {
		r = r<<8 | uint32(c)
	}
	return r
}

// IndexMagic adjusts a code point for lookup in a cmap sub-table.
// For a Microsoft symbol sub-table the code is moved to the private use
// area at U+F000, for legacy multi-byte sub-tables it is converted with
// ConvertToMB. All other sub-tables, and a nil sub-table, take the code
// point as-is.
func IndexMagic(charmap *ot.CMapSubtable, code rune) uint32 {
	if charmap == nil {
		return uint32(code)
	}
	switch enc := EncodingOf(charmap.PlatformID, charmap.EncodingID); {
	case enc == EncodingSymbol:
		return 0xf000 | uint32(code)
	case enc.IsMultiByte():
		return ConvertToMB(enc, code)
	}
	return uint32(code)
}
