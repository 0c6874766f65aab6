/*
Package otquery answers questions about a parsed font which need more than
decoding a single table: normalized vertical metrics, style flags, weight,
names and glyph metrics.

All functions in this package accept fonts with missing optional tables and
fall back to documented defaults. They never return an error for malformed
metadata.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subfont.query'
func tracer() tracing.Trace {
	return tracing.Select("subfont.query")
}
