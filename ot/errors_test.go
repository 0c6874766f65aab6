package ot

import (
	"errors"
	"testing"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{Severity(999), "UNKNOWN"},
	}
	for _, tt := range tests {
		if result := tt.severity.String(); result != tt.expected {
			t.Errorf("Severity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

func TestTableIssue(t *testing.T) {
	tests := []struct {
		name     string
		issue    TableIssue
		expected string
	}{
		{
			name: "with offset",
			issue: TableIssue{
				Table:    T("OS/2"),
				Section:  "Table",
				Issue:    "OS/2 table too small",
				Severity: SeverityMajor,
				Offset:   1234,
			},
			expected: "[MAJOR] OS/2/Table at offset 1234: OS/2 table too small",
		},
		{
			name: "without offset",
			issue: TableIssue{
				Table:    T("head"),
				Section:  "Missing",
				Issue:    "missing required table",
				Severity: SeverityCritical,
			},
			expected: "[CRITICAL] head/Missing: missing required table",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.issue.Error(); result != tt.expected {
				t.Errorf("TableIssue.Error() = %q; want %q", result, tt.expected)
			}
			if !errors.Is(tt.issue, ErrFontFormat) {
				t.Errorf("expected table issue to match ErrFontFormat")
			}
		})
	}
}

func TestIssueLog(t *testing.T) {
	var issues issueLog
	issues.report(T("post"), "Table", SeverityMajor, 100, "post table too small: %d bytes", 20)
	issues.report(T("cmap"), "Subtable", SeverityMinor, 400, "out of bounds")
	otf := &Font{issues: issues}
	if major := otf.Issues(SeverityMajor); len(major) != 1 || major[0].Table != T("post") {
		t.Errorf("expected a single major issue for table post, have %v", major)
	}
	if all := otf.Issues(SeverityMinor); len(all) != 2 {
		t.Errorf("expected 2 issues, have %d", len(all))
	}
	if s := otf.Issues(SeverityMajor)[0].Issue; s != "post table too small: 20 bytes" {
		t.Errorf("unexpected issue text %q", s)
	}
	empty := &Font{}
	if empty.Issues(SeverityMinor) == nil || len(empty.Issues(SeverityMinor)) != 0 {
		t.Error("font without issues should report an empty list")
	}
}

func TestErrFontFormatWrapping(t *testing.T) {
	err := errFontFormat("size of cmap table")
	if !errors.Is(err, ErrFontFormat) {
		t.Errorf("expected error to wrap ErrFontFormat")
	}
	if err.Error() != "sfnt font format: size of cmap table" {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestCheckFontSize(t *testing.T) {
	for _, size := range []int64{0, -1, MaxFontSize + 1, 1 << 62} {
		if err := CheckFontSize(size); !errors.Is(err, ErrFontSize) {
			t.Errorf("expected size %d to be rejected, have %v", size, err)
		}
	}
	if err := CheckFontSize(MaxFontSize); err != nil {
		t.Errorf("expected maximum size to be accepted, have %v", err)
	}
	if _, err := ParseCollection(nil); !errors.Is(err, ErrFontSize) {
		t.Errorf("expected empty font data to be rejected with ErrFontSize, have %v", err)
	}
}
