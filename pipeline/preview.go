package pipeline

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Hunk is a run of changed lines. Line is the 1-based line number of the
// first line in the original file.
type Hunk struct {
	Line   int
	Before []string
	After  []string
}

// Preview describes the change a dry run would make to one file.
type Preview struct {
	Path  string
	Hunks []Hunk
}

// NewPreview compares before and after line by line.
func NewPreview(path, before, after string) Preview {
	return Preview{Path: path, Hunks: diffLines(splitLines(before), splitLines(after))}
}

// String renders the preview as -/+ line pairs.
func (p Preview) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", p.Path, p.Path)
	for _, h := range p.Hunks {
		fmt.Fprintf(&b, "@@ line %d @@\n", h.Line)
		for _, l := range h.Before {
			b.WriteString("-" + l + "\n")
		}
		for _, l := range h.After {
			b.WriteString("+" + l + "\n")
		}
	}
	return b.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// diffLines reports every non-equal opcode of the line matcher as a hunk.
func diffLines(a, b []string) []Hunk {
	var hunks []Hunk
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		hunks = append(hunks, Hunk{
			Line:   op.I1 + 1,
			Before: append([]string{}, a[op.I1:op.I2]...),
			After:  append([]string{}, b[op.J1:op.J2]...),
		})
	}
	return hunks
}
