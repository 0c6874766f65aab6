package ot

import (
	"errors"
	"fmt"
)

// Errors returned when font data cannot be turned into a usable face.
var (
	// ErrFontFormat is wrapped by every error for a malformed font binary.
	ErrFontFormat = errors.New("sfnt font format")
	// ErrFontSize is returned for font data of implausible size.
	ErrFontSize = errors.New("font data size out of range")
)

// MaxFontSize is the largest font file or stream accepted, in bytes. The
// biggest CJK collections in the wild stay well below it.
const MaxFontSize = 1 << 30

func errFontFormat(message string) error {
	return fmt.Errorf("%w: %s", ErrFontFormat, message)
}

// CheckFontSize validates the byte size a font file or stream reports
// before its data is read into memory.
func CheckFontSize(size int64) error {
	if size <= 0 || size > MaxFontSize {
		return fmt.Errorf("%w: %d bytes", ErrFontSize, size)
	}
	return nil
}

// Severity grades a table defect by its effect on a face.
type Severity int

const (
	// SeverityCritical: the face cannot be opened at all.
	SeverityCritical Severity = iota
	// SeverityMajor: the table is dropped. Classification and metrics fall
	// back to the values they synthesize for fonts without that table.
	SeverityMajor
	// SeverityMinor: the table is used, but part of it was skipped or
	// it is misplaced.
	SeverityMinor
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// TableIssue is a defect found in a table of a font which nevertheless
// parsed. Issues of a font are available from Font.Issues.
type TableIssue struct {
	Table    Tag
	Section  string // part of the table, e.g. "Bounds" or "Subtable"
	Issue    string
	Severity Severity
	Offset   uint32 // byte offset in the font file, 0 if unknown
}

func (e TableIssue) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// Unwrap makes every table issue match ErrFontFormat.
func (e TableIssue) Unwrap() error {
	return ErrFontFormat
}

// issueLog collects table issues while a font is parsed.
type issueLog []TableIssue

func (l *issueLog) report(table Tag, section string, severity Severity, offset uint32, format string, args ...interface{}) {
	issue := TableIssue{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: severity,
		Offset:   offset,
	}
	tracer().Debugf("%v", issue)
	*l = append(*l, issue)
}

// Issues returns the table issues of a font at least as severe as least.
// Issues(SeverityMinor) returns all of them.
func (otf *Font) Issues(least Severity) []TableIssue {
	issues := []TableIssue{}
	for _, issue := range otf.issues {
		if issue.Severity <= least {
			issues = append(issues, issue)
		}
	}
	return issues
}
