package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/subfont"
	"github.com/npillmayer/subfont/otresolve"
	"github.com/pterm/pterm"
)

// tracer traces with key 'subfont.cli'
func tracer() tracing.Trace {
	return tracing.Select("subfont.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontdirs := flag.String("fontdirs", "", "Font directories, separated by the OS path list separator")
	system := flag.Bool("system", true, "Index system fonts")
	family := flag.String("family", "Arial", "Font family to resolve")
	size := flag.Float64("size", 32, "Font size in pixels")
	hinting := flag.String("hinting", "none", "Hinting [none|light|normal|native]")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.subfont":          *tlevel,
		"trace.subfont.cli":      *tlevel,
		"trace.subfont.discover": "Error",
		"trace.subfont.resolve":  *tlevel,
		"fontdirs":               *fontdirs,
		"system-fonts":           *system,
		"hinting":                *hinting,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the font resolver CLI")

	lib, err := subfont.NewLibrary(conf)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
	defer lib.Close()
	//
	// set up REPL
	repl, err := readline.New("font > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{
		lib:  lib,
		repl: repl,
		desc: otresolve.Desc{Family: *family, Bold: 400},
		size: *size,
	}
	if err := intp.resolve(); err != nil { // family provided by flag
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lib  *subfont.Library
	repl *readline.Instance
	desc otresolve.Desc
	size float64
	font *otresolve.Font
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( %s, weight=%d, italic=%d, size=%g, faces=%d )",
		intp.desc.Family, intp.desc.Bold, intp.desc.Italic, intp.size, intp.font.NumFaces())
}

// resolve gets the logical font for the current descriptor from the library.
func (intp *Intp) resolve() (err error) {
	if intp.font, err = intp.lib.Font(intp.desc); err != nil {
		return err
	}
	intp.font.SetSize(intp.size)
	tracer().Infof("resolved %q to %s", intp.desc.Family, intp.font.Face(0).Name())
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	FONT
	BOLD
	ITALIC
	SIZE
	GLYPH
	OUTLINE
	CHAIN
	CHARMAPS
	FAMILIES
	METRICS
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"font":     FONT,
	"bold":     BOLD,
	"italic":   ITALIC,
	"size":     SIZE,
	"glyph":    GLYPH,
	"outline":  OUTLINE,
	"chain":    CHAIN,
	"charmaps": CHARMAPS,
	"families": FAMILIES,
	"metrics":  METRICS,
}

var opNames = []string{
	"quit",
	"help",
	"font",
	"bold",
	"italic",
	"size",
	"glyph",
	"outline",
	"chain",
	"charmaps",
	"families",
	"metrics",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

// parseCommand splits a line into steps like "font:Arial", "size:24" or
// "outline:A:rot". Family names containing blanks are written with
// underscores, e.g. "font:Times_New_Roman".
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, errors.New("too many steps in command")
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":")
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = strings.ReplaceAll(getOptArg(c, 1), "_", " ")
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: '%s'", opNames[code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	FONT:     fontOp,
	BOLD:     boldOp,
	ITALIC:   italicOp,
	SIZE:     sizeOp,
	GLYPH:    glyphOp,
	OUTLINE:  outlineOp,
	CHAIN:    chainOp,
	CHARMAPS: charmapsOp,
	FAMILIES: familiesOp,
	METRICS:  metricsOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
