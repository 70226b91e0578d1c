package extract

import (
	"regexp"
	"sort"
	"strings"
)

// IgnoreDirective excludes its own line and the next line.
const IgnoreDirective = "// i18n-ignore"

// RichZoneSize is how far a rich-text zone reaches from its marker.
const RichZoneSize = 300

var richMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`RichText\s*\(\s*text\s*:\s*(?:const\s+)?TextSpan\s*\(`),
	regexp.MustCompile(`Text\.rich\s*\(\s*(?:const\s+)?TextSpan\s*\(`),
}

// Mask records which lines of a file are off limits: lines carrying or
// following the ignore directive, and lines overlapped by a rich-text zone.
type Mask struct {
	lineStarts []int
	masked     map[int]bool
	zones      [][2]int
}

// NewMask scans text for ignore directives and rich-text markers.
func NewMask(text string) *Mask {
	m := &Mask{lineStarts: []int{0}, masked: make(map[int]bool)}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}

	for i, start := range m.lineStarts {
		end := len(text)
		if i+1 < len(m.lineStarts) {
			end = m.lineStarts[i+1]
		}
		if strings.Contains(text[start:end], IgnoreDirective) {
			m.masked[i+1] = true
			m.masked[i+2] = true
		}
	}

	for _, re := range richMarkerRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			end := loc[0] + RichZoneSize
			if end > len(text) {
				end = len(text)
			}
			m.zones = append(m.zones, [2]int{loc[0], end})
			last := m.Line(end - 1)
			for l := m.Line(loc[0]); l <= last; l++ {
				m.masked[l] = true
			}
		}
	}
	return m
}

// Line returns the 1-based line number holding offset.
func (m *Mask) Line(offset int) int {
	return sort.Search(len(m.lineStarts), func(i int) bool { return m.lineStarts[i] > offset })
}

// Masked reports whether offset lies on an ignored or rich-text line.
func (m *Mask) Masked(offset int) bool {
	return m.masked[m.Line(offset)]
}

// RichValues returns the text of every literal inside a rich-text zone.
func (m *Mask) RichValues(text string) map[string]bool {
	out := make(map[string]bool)
	for _, z := range m.zones {
		for _, loc := range LiteralRe.FindAllStringIndex(text[z[0]:z[1]], -1) {
			if v, ok := Unquote(text[z[0]+loc[0] : z[0]+loc[1]]); ok {
				out[v] = true
			}
		}
	}
	return out
}

// LineText returns the text of the line holding offset, without the
// trailing newline.
func (m *Mask) LineText(text string, offset int) string {
	l := m.Line(offset)
	start := m.lineStarts[l-1]
	end := len(text)
	if l < len(m.lineStarts) {
		end = m.lineStarts[l] - 1
	}
	return text[start:end]
}
