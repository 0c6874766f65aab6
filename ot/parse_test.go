package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/subfont/internal/testfont"
	"golang.org/x/image/font/gofont/goregular"
)

func parseSpec(t *testing.T, spec testfont.Spec) *Font {
	t.Helper()
	otf, err := Parse(testfont.Build(spec).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return otf
}

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	otf := parseSpec(t, testfont.Default())
	if otf.Header.FontType != 0x00010000 {
		t.Fatalf("expected font type 0x0001000, is %x", otf.Header.FontType)
	}
	if otf.IsCFF() {
		t.Errorf("expected TrueType font not to be CFF")
	}
	if otf.UnitsPerEm() != 1000 || otf.NumGlyphs() != 4 {
		t.Errorf("expected upem=1000, glyphs=4; have %d, %d", otf.UnitsPerEm(), otf.NumGlyphs())
	}
	if issues := otf.Issues(SeverityMinor); len(issues) != 0 {
		t.Errorf("expected no table issues, have %v", issues)
	}
	spec := testfont.Default()
	spec.CFF = true
	if otf = parseSpec(t, spec); !otf.IsCFF() {
		t.Errorf("expected OTTO font to be CFF")
	}
}

func TestParseTypedTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	spec := testfont.Default()
	spec.OS2.CodePageRange1 = 1<<2 | 1<<0
	spec.Post.FixedPitch = true
	spec.Vertical = true
	otf := parseSpec(t, spec)
	os2 := otf.OS2
	if os2 == nil {
		t.Fatal("expected font to have typed OS/2 table")
	}
	if os2.Version != 1 || os2.WeightClass != 400 || os2.WinAscent != 900 || os2.WinDescent != 300 {
		t.Errorf("OS/2 fields wrong: %+v", os2)
	}
	if os2.TypoDescender != -250 || os2.CodePageRange1 != 5 || os2.Panose[0] != 2 || os2.Panose[1] != 11 {
		t.Errorf("OS/2 fields wrong: %+v", os2)
	}
	if os2.StrikeoutPosition != 300 || os2.StrikeoutSize != 50 || os2.VendorID != T("TEST") {
		t.Errorf("OS/2 strikeout/vendor wrong: %+v", os2)
	}
	if otf.Post == nil || otf.Post.Format != 0x30000 || otf.Post.UnderlinePosition != -100 ||
		otf.Post.IsFixedPitch == 0 {
		t.Errorf("post fields wrong: %+v", otf.Post)
	}
	if otf.Head.YMin != -200 || otf.Head.YMax != 800 {
		t.Errorf("head bbox wrong: %+v", otf.Head)
	}
	if otf.HHea == nil || otf.HHea.Ascender != 800 || otf.HHea.LineGap != 90 {
		t.Errorf("hhea fields wrong: %+v", otf.HHea)
	}
	if adv, lsb, ok := otf.HMtx.HMetrics(1); !ok || adv != 600 || lsb != 50 {
		t.Errorf("expected hmtx (600, 50) for glyph 1, have (%d, %d)", adv, lsb)
	}
	if adv, _, ok := otf.VMtx.VMetrics(2); !ok || adv != 1000 {
		t.Errorf("expected vmtx advance 1000 for glyph 2, have %d", adv)
	}
	if s, ok := otf.Name.Lookup(NamePostScript); !ok || s != "TestSans-Regular" {
		t.Errorf("expected PostScript name TestSans-Regular, have %q", s)
	}
}

func TestParseMissingRequired(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	f := testfont.Build(testfont.Default()).RemoveTable("cmap")
	_, err := Parse(f.Bytes())
	if err == nil || !errors.Is(err, ErrFontFormat) {
		t.Fatalf("expected format error for font without cmap, have %v", err)
	}
	// optional tables may be missing
	f = testfont.Build(testfont.Default()).RemoveTable("OS/2").RemoveTable("post").RemoveTable("name")
	otf, err := Parse(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if otf.OS2 != nil || otf.Post != nil || otf.Name != nil {
		t.Errorf("expected missing optional tables to be nil")
	}
}

func TestParseBrokenOptionalTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	f := testfont.Build(testfont.Default()).SetTable("OS/2", make([]byte, 40))
	otf, err := Parse(f.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if otf.OS2 != nil {
		t.Errorf("expected short OS/2 table not to be typed")
	}
	if otf.Table(T("OS/2")) == nil {
		t.Errorf("expected short OS/2 table to be kept as generic table")
	}
	issues := otf.Issues(SeverityMajor)
	if len(issues) != 1 || issues[0].Severity != SeverityMajor || issues[0].Table != T("OS/2") {
		t.Errorf("expected a single major issue for OS/2, have %v", issues)
	}
	if !errors.Is(issues[0], ErrFontFormat) {
		t.Errorf("expected table issue to match ErrFontFormat")
	}
}

func TestParseGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	for _, b := range [][]byte{nil, {0, 1}, []byte("wOFFxxxxxxxxxxxx")} {
		if _, err := Parse(b); err == nil {
			t.Errorf("expected error for input %q", b)
		}
	}
	// table directory pointing beyond the end of the file
	b := testfont.Build(testfont.Default()).Bytes()
	if _, err := Parse(b[:40]); err == nil {
		t.Errorf("expected error for truncated font")
	}
}

func TestParseCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	s1, s2 := testfont.Default(), testfont.Default()
	s2.Names = map[uint16]string{6: "TestSans-Bold"}
	s2.OS2.WeightClass = 700
	ttc := testfont.Collection(testfont.Build(s1), testfont.Build(s2))
	offsets, err := ParseCollection(ttc)
	if err != nil {
		t.Fatal(err)
	}
	if len(offsets) != 2 {
		t.Fatalf("expected 2 collection members, have %d", len(offsets))
	}
	otf, err := ParseAt(ttc, offsets[1])
	if err != nil {
		t.Fatal(err)
	}
	if otf.OS2.WeightClass != 700 {
		t.Errorf("expected second member to have weight 700, has %d", otf.OS2.WeightClass)
	}
	if s, _ := otf.Name.Lookup(NamePostScript); s != "TestSans-Bold" {
		t.Errorf("expected second member to be TestSans-Bold, is %q", s)
	}
	if CollectionIndex(ttc, offsets[1]) != 1 || CollectionIndex(ttc, 3) != -1 {
		t.Errorf("collection index lookup by directory offset failed")
	}
	single := testfont.Build(s1).Bytes()
	if offsets, _ = ParseCollection(single); len(offsets) != 1 || offsets[0] != 0 {
		t.Errorf("expected plain font to have a single offset 0, have %v", offsets)
	}
}

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "subfont.ot")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if otf.CMap == nil || len(otf.CMap.Subtables) == 0 {
		t.Fatal("expected Go Regular to have cmap sub-tables")
	}
	found := false
	for i, st := range otf.CMap.Subtables {
		if st.IsUnicode() && otf.CMap.Lookup(i, 'A') != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected glyph for 'A' in a Unicode cmap of Go Regular")
	}
	if otf.OS2 == nil || otf.Post == nil || otf.HHea == nil {
		t.Errorf("expected Go Regular to have OS/2, post and hhea tables")
	}
	if name, ok := otf.Name.Lookup(NameFamily); !ok || name != "Go" {
		t.Errorf("expected family name 'Go', have %q", name)
	}
}
