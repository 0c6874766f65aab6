package otclass

import (
	"github.com/npillmayer/subfont/ot"
)

// PitchPostScript returns the pitch of a PostScript face from the PANOSE
// proportion in OS/2.
func PitchPostScript(otf *ot.Font) Pitch {
	if otf.OS2 != nil && otf.OS2.Panose[PanProportion] == PanProportionMonospace {
		return PitchFixed
	}
	return PitchVariable
}

// PitchTrueType returns the pitch of a TrueType face from table 'post'.
// Double-byte faces claiming a monospaced proportion in PANOSE are fixed
// pitch as well.
func PitchTrueType(otf *ot.Font, guessed Charset, panose [10]byte, charsets []Charset) Pitch {
	fixed := otf.Post != nil && otf.Post.IsFixedPitch != 0
	if (IsAnyCharsetDBCS(charsets, guessed) || guessed == CharsetShiftJIS || guessed == CharsetHangul) &&
		panose[PanProportion] == PanProportionMonospace {
		fixed = true
	}
	if fixed {
		return PitchFixed
	}
	return PitchVariable
}

// familyRule assigns a family if a PANOSE digit is in the range lo…hi.
type familyRule struct {
	digit  int
	lo, hi byte
	family Family
}

var (
	postScriptFamilies = []familyRule{
		{PanFamilyType, PanFamilyDecorative, PanFamilyPictorial, FamilyDecorative},
		{PanFamilyType, PanFamilyScript, PanFamilyScript, FamilyScript},
		{PanSerifStyle, 2, 10, FamilyRoman},
		{PanSerifStyle, 11, 15, FamilySwiss},
	}
	cjkFamilies = []familyRule{
		{PanFamilyType, PanFamilyScript, PanFamilyScript, FamilyScript},
		{PanSerifStyle, 2, 10, FamilyRoman},
		{PanSerifStyle, 11, 15, FamilyModern},
	}
	trueTypeFamilies = []familyRule{
		{PanFamilyType, PanFamilyDecorative, PanFamilyDecorative, FamilyDecorative},
		{PanFamilyType, PanFamilyScript, PanFamilyScript, FamilyScript},
		{PanProportion, PanProportionMonospace, PanProportionMonospace, FamilyModern},
		{PanSerifStyle, 2, 10, FamilyRoman},
		{PanSerifStyle, 11, 15, FamilySwiss},
	}
)

func familyFromPanose(panose [10]byte, rules []familyRule, dflt Family) Family {
	for _, r := range rules {
		if d := panose[r.digit]; d >= r.lo && d <= r.hi {
			return r.family
		}
	}
	return dflt
}

// FamilyPostScript returns the family class of a PostScript face from the
// PANOSE classification in OS/2. The default is modern.
func FamilyPostScript(otf *ot.Font) Family {
	if otf.OS2 == nil {
		return FamilyModern
	}
	return familyFromPanose(otf.OS2.Panose, postScriptFamilies, FamilyModern)
}

// FamilyTrueType returns the family class of a TrueType face. Japanese and
// Korean faces map sans-serif styles to modern instead of swiss.
func FamilyTrueType(guessed Charset, panose [10]byte) Family {
	if guessed == CharsetShiftJIS || guessed == CharsetHangul {
		return familyFromPanose(panose, cjkFamilies, FamilyDontCare)
	}
	return familyFromPanose(panose, trueTypeFamilies, FamilyDontCare)
}
