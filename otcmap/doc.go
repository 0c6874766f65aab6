/*
Package otcmap selects a font's charmap and maps Unicode code points to the
character codes of legacy multi-byte charmaps.

Fonts made for East Asian versions of Windows frequently carry only a cmap
sub-table for a legacy encoding (Shift-JIS, GB2312, Big5, Wansung or Johab),
and symbol fonts use a Microsoft symbol sub-table with codes in the private
use area U+F000…U+F0FF. To look up a glyph for a Unicode code point in such a
sub-table, the code point has to be converted first. `IndexMagic` does this
conversion for a selected sub-table, `ConvertToMB` converts to a legacy
encoding directly.

Encoders are taken from golang.org/x/text/encoding. Johab is not supported
by x/text and every conversion to it yields 0.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otcmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.cmap'
func tracer() tracing.Trace {
	return tracing.Select("subfont.cmap")
}
