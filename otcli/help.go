package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "chain", "fallback":
		pterm.Info.Println("Fallback Chain")
		pterm.Println(`
	A logical font starts with the face best matching its family, weight
	and italic strength. Whenever a character is missing from every face
	of the chain, one more face is selected and appended:
	+-----+--------------------------+
	| Pos | Face                     |
	+-----+--------------------------+
	| 0   | best match for family    |
	| 1   | face with a missing char |
	| ... | up to 10 faces           |
	+-----+--------------------------+
	Try "glyph:U+4E00" followed by "chain".
	`)
	case "outline", "deco":
		pterm.Info.Println("Outlines")
		pterm.Println(`
	outline:<char>[:<deco>] prints the glyph outline in 26.6 pixels, y down.
	Decorations are joined by '+':
	  ul   underline from table 'post'
	  st   strike-through from table 'OS/2'
	  rot  rotate by 90 degrees for vertical text
	Example: outline:A:ul+st
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	font:<family>       resolve a family, blanks written as '_'
	bold[:<weight>]     request a weight, default 700
	italic[:<strength>] request italics, default 100
	size[:<px>]         set or show the size in pixels
	glyph:<char>        find face and glyph for a character (or U+XXXX)
	outline:<char>      print a glyph outline, see "help:outline"
	chain               list the fallback chain, see "help:chain"
	charmaps[:<face>]   list the charmaps of a face
	metrics[:<face>]    print the vertical metrics of a face
	families[:<prefix>] list known families
	quit
	`)
	}
}
