package otquery

import (
	"strings"

	"github.com/npillmayer/subfont/ot"
)

// Style is a set of style flags of a face.
type Style uint8

const (
	StyleItalic Style = 1 << iota // face is italic or oblique
	StyleBold                     // face is bold
)

// Italic reports whether the italic flag is set.
func (s Style) Italic() bool { return s&StyleItalic != 0 }

// Bold reports whether the bold flag is set.
func (s Style) Bold() bool { return s&StyleBold != 0 }

func (s Style) String() string {
	switch s & (StyleItalic | StyleBold) {
	case StyleItalic:
		return "italic"
	case StyleBold:
		return "bold"
	case StyleItalic | StyleBold:
		return "bold italic"
	}
	return "regular"
}

// StyleFlags derives the style of a face the way the legacy Windows text
// stack does. If the face has an OS/2 table, fsSelection bit 0 sets italic
// and bit 5 sets bold, and nothing else is considered. Otherwise bits 1
// (italic) and 0 (bold) of macStyle in table 'head' are used. Faces with
// neither table get flags guessed from the subfamily name.
func StyleFlags(otf *ot.Font) Style {
	var style Style
	if os2 := otf.OS2; os2 != nil {
		if os2.FsSelection&(1<<0) != 0 {
			style |= StyleItalic
		}
		if os2.FsSelection&(1<<5) != 0 {
			style |= StyleBold
		}
		return style
	}
	if head := otf.Head; head != nil {
		if head.MacStyle&(1<<1) != 0 {
			style |= StyleItalic
		}
		if head.MacStyle&(1<<0) != 0 {
			style |= StyleBold
		}
		return style
	}
	return styleFromName(otf)
}

func styleFromName(otf *ot.Font) Style {
	var style Style
	sub, ok := otf.Name.Lookup(ot.NameSubfamily)
	if !ok {
		return style
	}
	sub = strings.ToLower(sub)
	if strings.Contains(sub, "italic") || strings.Contains(sub, "oblique") {
		style |= StyleItalic
	}
	if strings.Contains(sub, "bold") {
		style |= StyleBold
	}
	return style
}

// osWeights maps the weight classes 1…9 some old fonts use to CSS weights.
var osWeights = [...]int{1: 100, 2: 200, 3: 300, 4: 350, 5: 400, 6: 600, 7: 700, 8: 800, 9: 900}

// Weight returns the weight of a face on the 100…900 scale.
//
// Without an OS/2 table or with usWeightClass 0 the weight is 700 for
// faces flagged bold and 400 otherwise. Weight classes 1 to 9 are scaled
// up, all other values are returned as-is.
func Weight(otf *ot.Font) int {
	var w uint16
	if otf.OS2 != nil {
		w = otf.OS2.WeightClass
	}
	switch {
	case w == 0:
		if StyleFlags(otf).Bold() {
			return 700
		}
		return 400
	case w < uint16(len(osWeights)):
		return osWeights[w]
	}
	return int(w)
}
