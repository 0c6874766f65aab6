/*
Package ot provides typed access to the sfnt tables of TrueType and OpenType
fonts which are relevant for font selection and classification.

Package `ot` will not interpret tables beyond decoding their fields. Clients
find the tables they need with `Font.Table` or the typed shortcuts
(`Font.OS2`, `Font.Post`, …) and do the interpretation themselves. Package
`otquery` and `otclass` build on top of this.

Tables covered: cmap (all encoding records, lookup formats 0, 2, 4, 6, 10, 12
and 13), head, hhea, hmtx, maxp, name, OS/2, post, vhea and vmtx. Every other
table is kept as a generic binary table.

Font collections (*.ttc) are supported by parsing the collection header with
`ParseCollection` and then calling `ParseAt` for a member.

Fonts in the wild frequently infringe upon the specification. Broken optional
tables are reported as `TableIssue` with severity `SeverityMajor` and are kept
in generic form, so that a face remains usable as long as 'cmap' and 'head'
are intact. Clients query them with `Font.Issues`. Font data larger than
`MaxFontSize` is rejected with `ErrFontSize` before parsing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.ot'
func tracer() tracing.Trace {
	return tracing.Select("subfont.ot")
}
