package otdiscover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/subfont/ot"
	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otface"
	"github.com/npillmayer/subfont/otquery"
)

// DefaultFallbackFamily is used if no fallback family is configured.
const DefaultFallbackFamily = "Arial"

// Substitutions for generic family names, as on Windows.
var defaultSubstitutions = map[string][]string{
	"sans-serif": {"Arial"},
	"serif":      {"Times New Roman"},
	"monospace":  {"Courier New"},
}

// ErrNoFont is returned when a file or buffer contains no usable font face.
var ErrNoFont = errors.New("no usable font face")

// entry collects the uids of faces sharing a name.
type entry struct {
	uids []int
}

func (e *entry) add(uid int) {
	if !slices.Contains(e.uids, uid) {
		e.uids = append(e.uids, uid)
	}
}

// SystemProvider is a provider for font files and memory fonts.
// It is safe for concurrent use.
type SystemProvider struct {
	sync.Mutex
	fonts         []FontInfo
	families      *trie.Trie   // normalized family name -> *entry
	names         *treemap.Map // normalized full or PostScript name -> *entry
	substitutions map[string][]string
	fallback      string
	faces         map[int]*otface.Face // opened for glyph checks
}

var _ Provider = (*SystemProvider)(nil)

// NewSystemProvider creates a provider configured by conf, which may be nil.
// Fonts from configured directories are indexed first, then the system's
// fonts, unless switched off.
func NewSystemProvider(conf schuko.Configuration) *SystemProvider {
	p := &SystemProvider{
		families:      trie.New(),
		names:         treemap.NewWithStringComparator(),
		substitutions: make(map[string][]string, len(defaultSubstitutions)),
		fallback:      DefaultFallbackFamily,
		faces:         make(map[int]*otface.Face),
	}
	for family, subst := range defaultSubstitutions {
		p.substitutions[family] = subst
	}
	if conf != nil {
		if s := conf.GetString("substitutions"); s != "" {
			p.parseSubstitutions(s)
		}
		if fb := strings.TrimSpace(conf.GetString("fallback-family")); fb != "" {
			p.fallback = fb
		}
		for _, dir := range filepath.SplitList(conf.GetString("fontdirs")) {
			if err := p.AddDir(dir); err != nil {
				tracer().Errorf("cannot index font directory %q: %v", dir, err)
			}
		}
		for _, name := range strings.FieldsFunc(conf.GetString("fonts"), isListSep) {
			if err := p.AddSystemFont(name); err != nil {
				tracer().Errorf("%v", err)
			}
		}
	}
	if conf == nil || !conf.IsSet("system-fonts") || conf.GetBool("system-fonts") {
		for _, path := range findfont.List() {
			if err := p.AddFile(path); err != nil {
				tracer().Debugf("skipping system font: %v", err)
			}
		}
	}
	tracer().Infof("font provider knows %d faces", len(p.fonts))
	return p
}

func isListSep(r rune) bool {
	return r == ',' || r == ';'
}

// parseSubstitutions reads definitions of the form
// "generic=Family1,Family2;generic2=Family3".
func (p *SystemProvider) parseSubstitutions(s string) {
	for _, def := range strings.Split(s, ";") {
		generic, families, ok := strings.Cut(def, "=")
		generic = normalize(generic)
		if !ok || generic == "" {
			tracer().Errorf("malformed font substitution %q", def)
			continue
		}
		var subst []string
		for _, f := range strings.Split(families, ",") {
			if f = strings.TrimSpace(f); f != "" {
				subst = append(subst, f)
			}
		}
		p.substitutions[generic] = subst
	}
}

// AddDir indexes all font files below dir.
func (p *SystemProvider) AddDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isFontFile(path) {
			return nil
		}
		if err := p.AddFile(path); err != nil {
			tracer().Infof("skipping font file: %v", err)
		}
		return nil
	})
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// AddSystemFont locates a font file by name in the system's font folders
// and indexes it.
func (p *SystemProvider) AddSystemFont(fileName string) error {
	path, err := findfont.Find(fileName)
	if err != nil {
		return fmt.Errorf("cannot locate font %q: %w", fileName, err)
	}
	return p.AddFile(path)
}

// AddFile indexes all faces of a font file.
func (p *SystemProvider) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = p.index(path, data, nil)
	return err
}

// AddFont indexes the faces of a font in memory. name identifies the font
// in diagnostics. It returns the uids of the new faces.
func (p *SystemProvider) AddFont(name string, data []byte) ([]int, error) {
	return p.index(name, data, data)
}

func (p *SystemProvider) index(path string, data, mem []byte) ([]int, error) {
	offsets, err := ot.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", path, err)
	}
	p.Lock()
	defer p.Unlock()
	var uids []int
	for i, offset := range offsets {
		otf, err := ot.ParseAt(data, offset)
		if err != nil {
			tracer().Infof("skipping face %d of font %q: %v", i, path, err)
			continue
		}
		fi := FontInfo{
			UID:            len(p.fonts),
			Path:           path,
			Index:          i,
			PostScriptName: otquery.PostScriptName(otf).Or(""),
			Families:       otquery.FamilyNames(otf),
			FullNames:      otquery.FullNames(otf),
			Weight:         otquery.Weight(otf),
			Italic:         otquery.StyleFlags(otf).Italic(),
			PostScript:     otf.IsCFF(),
			Data:           mem,
		}
		if len(fi.Families) == 0 {
			tracer().Infof("font %q, face %d has no family name", path, i)
		}
		p.fonts = append(p.fonts, fi)
		for _, family := range fi.Families {
			p.addFamily(family, fi.UID)
		}
		for _, name := range fi.FullNames {
			p.addName(name, fi.UID)
		}
		if fi.PostScriptName != "" {
			p.addName(fi.PostScriptName, fi.UID)
		}
		uids = append(uids, fi.UID)
	}
	if len(uids) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoFont, path)
	}
	tracer().Debugf("indexed %d face(s) of font %q", len(uids), path)
	return uids, nil
}

func (p *SystemProvider) addFamily(family string, uid int) {
	key := normalize(family)
	if node, ok := p.families.Find(key); ok {
		node.Meta().(*entry).add(uid)
		return
	}
	p.families.Add(key, &entry{uids: []int{uid}})
}

func (p *SystemProvider) addName(name string, uid int) {
	key := normalize(name)
	if e, found := p.names.Get(key); found {
		e.(*entry).add(uid)
		return
	}
	p.names.Put(key, &entry{uids: []int{uid}})
}

// MatchFonts returns the faces with a family name, full name or PostScript
// name equal to name, ignoring case. Family matches come first.
func (p *SystemProvider) MatchFonts(name string) []FontInfo {
	key := normalize(name)
	if key == "" {
		return nil
	}
	p.Lock()
	defer p.Unlock()
	e := &entry{}
	if node, ok := p.families.Find(key); ok {
		for _, uid := range node.Meta().(*entry).uids {
			e.add(uid)
		}
	}
	if v, found := p.names.Get(key); found {
		for _, uid := range v.(*entry).uids {
			e.add(uid)
		}
	}
	fonts := make([]FontInfo, len(e.uids))
	for i, uid := range e.uids {
		fonts[i] = p.fonts[uid]
	}
	return fonts
}

// Fonts returns all faces known to the provider, ordered by uid.
func (p *SystemProvider) Fonts() []FontInfo {
	p.Lock()
	defer p.Unlock()
	return slices.Clone(p.fonts)
}

// Families returns the normalized family names starting with prefix, sorted.
func (p *SystemProvider) Families(prefix string) []string {
	p.Lock()
	defer p.Unlock()
	families := p.families.PrefixSearch(normalize(prefix))
	sort.Strings(families)
	return families
}

// Names returns the normalized full and PostScript names, sorted.
func (p *SystemProvider) Names() []string {
	p.Lock()
	defer p.Unlock()
	keys := p.names.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// CheckGlyph is true if face fi has a glyph for code in its selected charmap.
func (p *SystemProvider) CheckGlyph(fi FontInfo, code rune) bool {
	if code == 0 {
		return true
	}
	face, err := p.face(fi)
	if err != nil {
		tracer().Infof("cannot check glyph %#x: %v", code, err)
		return false
	}
	mb := otcmap.IndexMagic(face.SelectedCharmap(), code)
	return mb != 0 && face.CharIndex(mb) != 0
}

// face returns face fi, opening it on first use.
func (p *SystemProvider) face(fi FontInfo) (*otface.Face, error) {
	p.Lock()
	defer p.Unlock()
	if face, ok := p.faces[fi.UID]; ok {
		return face, nil
	}
	var face *otface.Face
	var err error
	if fi.Data != nil {
		face, err = otface.OpenStream(fi.Path, otface.MemoryStream(fi.Data), fi.Index, "")
	} else {
		face, err = otface.Open(fi.Path, fi.Index, "")
	}
	if err != nil {
		return nil, err
	}
	p.faces[fi.UID] = face
	return face, nil
}

// Substitutions returns the configured replacement families for family.
func (p *SystemProvider) Substitutions(family string) []string {
	p.Lock()
	defer p.Unlock()
	return slices.Clone(p.substitutions[normalize(family)])
}

// Fallback returns a family with a glyph for code. The configured fallback
// family is preferred, otherwise the first face with the glyph wins.
func (p *SystemProvider) Fallback(family string, code rune) string {
	for _, fi := range p.MatchFonts(p.fallback) {
		if p.CheckGlyph(fi, code) {
			return p.fallback
		}
	}
	for _, fi := range p.Fonts() {
		if len(fi.Families) > 0 && p.CheckGlyph(fi, code) {
			tracer().Debugf("fallback for %q, code %#x: %s", family, code, fi.Families[0])
			return fi.Families[0]
		}
	}
	return ""
}

// Close closes all faces opened for glyph checks.
func (p *SystemProvider) Close() {
	p.Lock()
	defer p.Unlock()
	for uid, face := range p.faces {
		face.Close()
		delete(p.faces, uid)
	}
}
