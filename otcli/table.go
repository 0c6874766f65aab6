package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/subfont/otcmap"
	"github.com/npillmayer/subfont/otdiscover"
	"github.com/pterm/pterm"
)

func fontOp(intp *Intp, op *Op) (error, bool) {
	family, ok := op.hasArg()
	if !ok {
		return errors.New("font needs a family name, e.g. font:Times_New_Roman"), false
	}
	desc := intp.desc
	intp.desc.Family = family
	if err := intp.resolve(); err != nil {
		intp.desc = desc
		return err, false
	}
	return nil, false
}

func boldOp(intp *Intp, op *Op) (error, bool) {
	return intp.setStyle(op, &intp.desc.Bold, 700)
}

func italicOp(intp *Intp, op *Op) (error, bool) {
	return intp.setStyle(op, &intp.desc.Italic, 100)
}

// setStyle sets a numeric style attribute of the font descriptor to the
// argument of op, or to def if op has no argument.
func (intp *Intp) setStyle(op *Op, attr *int, def int) (error, bool) {
	v := def
	if arg, ok := op.hasArg(); ok {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%s: not a number: %v", opNames[op.code], arg), false
		}
		v = n
	}
	old := *attr
	*attr = v
	if err := intp.resolve(); err != nil {
		*attr = old
		return err, false
	}
	return nil, false
}

func sizeOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		pterm.Printf("size is %g px\n", intp.size)
		return nil, false
	}
	size, err := strconv.ParseFloat(arg, 64)
	if err != nil || size <= 0 {
		return fmt.Errorf("invalid size: %v", arg), false
	}
	intp.size = size
	intp.font.SetSize(size)
	return nil, false
}

// charmapsOp lists the charmaps of a face of the fallback chain.
func charmapsOp(intp *Intp, op *Op) (error, bool) {
	i, err := faceArg(op)
	if err != nil {
		return err, false
	}
	face := intp.font.Face(i)
	if face == nil {
		return fmt.Errorf("no face %d in fallback chain", i), false
	}
	data := [][]string{
		{"Index", "Platform", "Encoding", "Format", "Legacy", "Selected"},
	}
	for j, st := range face.Font().CMap.Subtables {
		selected := ""
		if j == face.Charmap() {
			selected = "*"
		}
		data = append(data, []string{
			strconv.Itoa(j),
			strconv.Itoa(int(st.PlatformID)),
			strconv.Itoa(int(st.EncodingID)),
			strconv.Itoa(int(st.Format)),
			otcmap.EncodingOf(st.PlatformID, st.EncodingID).String(),
			selected,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// familiesOp lists the known families starting with a prefix.
func familiesOp(intp *Intp, op *Op) (error, bool) {
	sp, ok := intp.lib.Provider().(*otdiscover.SystemProvider)
	if !ok {
		return errors.New("font provider cannot list families"), false
	}
	families := sp.Families(op.arg)
	if len(families) == 0 {
		pterm.Printf("no families starting with %q\n", op.arg)
		return nil, false
	}
	data := [][]string{{"Family"}}
	for _, f := range families {
		data = append(data, []string{f})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func faceArg(op *Op) (int, error) {
	arg, ok := op.hasArg()
	if !ok {
		return 0, nil
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("face index not numeric: %v", arg)
	}
	return i, nil
}
