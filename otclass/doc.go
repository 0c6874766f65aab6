/*
Package otclass classifies font faces the way the legacy Windows text stack
(GDI) does: it derives a charset, the list of supported charsets, a font
family class and a pitch from the binary tables of a face.

Subtitle renderers have to reproduce these guesses, because subtitle authors
tuned their styles against GDI's font selection. The decision trees in this
package therefore follow GDI's observable behaviour, including its tie-break
order, rather than the intent of the OpenType specification.

Two paths exist: PostScript-flavoured faces (CFF outlines with an OS/2 table
of version 1 or later) are classified from OS/2 alone, all other faces take
the TrueType path with its probes for characters in the selected charmap.
`Classify` chooses the path and computes everything at once.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otclass

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.class'
func tracer() tracing.Trace {
	return tracing.Select("subfont.class")
}
