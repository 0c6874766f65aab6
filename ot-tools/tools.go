package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/subfont"
	"github.com/npillmayer/subfont/otresolve"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for testing font resolution, legacy font classification and glyph outlines.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	addFontFlags(commando.
		Register("resolve").
		SetDescription("Resolve text to faces and glyphs of a logical font and print the fallback chain.").
		SetShortDescription("resolve text").
		AddArgument("family", "font family name", "").
		AddArgument("text...", "text to resolve (variadic argument parts joined by comma by commando)", "")).
		SetAction(runResolveCommand)

	addFontFlags(commando.
		Register("view").
		SetDescription("Render text with a logical font to a PNG image.").
		SetShortDescription("text to image").
		AddArgument("family", "font family name", "").
		AddArgument("text...", "text to render", "")).
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-view.png").
		AddFlag("deco,D", "decorations (comma separated: ul, st)", commando.String, "-").
		AddFlag("show-bboxes,B", "draw red bounding-box outlines per rendered glyph", commando.Bool, nil).
		AddFlag("height,H", "image height in pixels (0 fits the text)", commando.Int, 0).
		SetAction(runViewCommand)

	commando.
		Register("classify").
		SetDescription("Print the legacy Windows classification and charmaps of the faces of a font file.").
		SetShortDescription("font classification").
		AddArgument("font", "font file path", "").
		AddFlag("index,i", "face index in a collection (-1 for all faces)", commando.Int, -1).
		SetAction(runClassifyCommand)

	commando.Parse(nil)
}

// addFontFlags adds the flags for describing a logical font and the font
// sources.
func addFontFlags(cmd *commando.Command) *commando.Command {
	return cmd.
		AddFlag("fontdirs,F", "font directories, separated by the OS path list separator", commando.String, "-").
		AddFlag("no-system", "do not index system fonts", commando.Bool, nil).
		AddFlag("bold,b", "weight, 400 is regular, 700 is bold", commando.Int, 400).
		AddFlag("italic,i", "italic strength, 0 is upright, 100 is italic", commando.Int, 0).
		AddFlag("vertical", "vertical writing", commando.Bool, nil).
		AddFlag("verbose,V", "display trace output", commando.Bool, nil).
		AddFlag("size,s", "font size in pixels", commando.Int, 48).
		AddFlag("hinting", "hinting: none|light|normal|native", commando.String, "none").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-")
}

// setupTracing routes the library's traces to the Go logger.
func setupTracing(verbose bool) {
	level := "Error"
	if verbose {
		level = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.subfont":          level,
		"trace.subfont.resolve":  level,
		"trace.subfont.discover": level,
		"trace.subfont.face":     level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// mustOpenFont creates a font library from the command line flags and
// resolves the logical font to use, set to the requested size.
func mustOpenFont(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) (*subfont.Library, *otresolve.Font) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	family := strings.TrimSpace(args["family"].Value)
	if family == "" {
		fatalf("font family is required")
	}
	conf := testconfig.Conf{
		"fontdirs":     mustFlagString(flags["fontdirs"], "fontdirs"),
		"system-fonts": !mustFlagBool(flags["no-system"], "no-system"),
		"hinting":      mustFlagString(flags["hinting"], "hinting"),
	}
	lib, err := subfont.NewLibrary(conf)
	if err != nil {
		fatalf("%v", err)
	}
	desc := otresolve.Desc{
		Family:   family,
		Bold:     mustFlagInt(flags["bold"], "bold"),
		Italic:   mustFlagInt(flags["italic"], "italic"),
		Vertical: mustFlagBool(flags["vertical"], "vertical"),
	}
	f, err := lib.Font(desc)
	if err != nil {
		lib.Close()
		fatalf("%v", err)
	}
	size := mustFlagInt(flags["size"], "size")
	if size <= 0 {
		lib.Close()
		fatalf("--size must be > 0")
	}
	f.SetSize(float64(size))
	return lib, f
}

func parseTextInput(textArg commando.ArgValue, cpFlag commando.FlagValue) (string, error) {
	cp, err := cpFlag.GetString()
	if err != nil {
		return "", fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	cp = strings.TrimSpace(cp)
	if cp == "-" {
		cp = ""
	}
	if cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	return textArg.Value, nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		s = ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
