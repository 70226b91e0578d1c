package rewrite

import (
	"regexp"
	"strings"
)

var directiveLineRe = regexp.MustCompile(`^\s*(?:import|export|part|library)\b`)

// EnsureImport inserts line after the last import, export, part or library
// directive of content, or at the top followed by a blank line when there
// is none. Content that already holds line is returned unchanged.
func EnsureImport(content, line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return content, false
	}

	lines := strings.SplitAfter(content, "\n")
	last := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == line {
			return content, false
		}
		if directiveLineRe.MatchString(l) {
			last = i
		}
	}

	if last < 0 {
		return line + "\n\n" + content, true
	}

	// A directive may continue over several lines (show/hide clauses).
	for last < len(lines)-1 && !strings.Contains(lines[last], ";") {
		last++
	}

	var b strings.Builder
	for i, l := range lines {
		b.WriteString(l)
		if i == last {
			if !strings.HasSuffix(l, "\n") {
				b.WriteByte('\n')
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), true
}
