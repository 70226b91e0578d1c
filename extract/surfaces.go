package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DisplayConstructors take the displayed text as their first argument.
var DisplayConstructors = []string{"Text", "SelectableText", "AutoSizeText", "MyText", "AppText", "CustomText"}

// NamedParams are named arguments that usually carry UI text.
var NamedParams = []string{
	"title", "label", "labelText", "hint", "hintText", "placeholder",
	"tooltip", "description", "message", "content", "header", "subtitle",
	"caption", "helperText", "errorText", "semanticLabel", "semanticsLabel",
}

// Controls are interactive widgets whose child: or text: argument may be
// a literal, directly or wrapped in one constructor call.
var Controls = []string{
	"ElevatedButton", "TextButton", "OutlinedButton", "FilledButton",
	"IconButton", "ListTile", "PopupMenuItem", "DropdownMenuItem",
	"BottomNavigationBarItem", "NavigationDestination", "Tab", "Chip",
}

// TranslateFunc is the lookup function used when no accessor class is
// generated.
const TranslateFunc = "tr"

// literalPattern matches one single- or double-quoted literal on one line.
const literalPattern = `"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'`

// LiteralRe matches any quoted literal token.
var LiteralRe = regexp.MustCompile(literalPattern)

// Window is one surface match. The literal token, quotes included, spans
// text[LitStart:LitEnd].
type Window struct {
	Start, End       int
	LitStart, LitEnd int
}

// Surfaces is the compiled set of matchers that locate literals in UI
// positions. It is safe for concurrent use.
type Surfaces struct {
	res []*regexp.Regexp
}

// CompileSurfaces builds the surface matchers. extra names additional
// display constructors.
func CompileSurfaces(extra []string) *Surfaces {
	ctors := append(append([]string(nil), DisplayConstructors...), extra...)
	lit := `(` + literalPattern + `)`
	return &Surfaces{res: []*regexp.Regexp{
		regexp.MustCompile(`\b` + alternation(ctors) + `\s*\(\s*` + lit),
		regexp.MustCompile(`\b` + alternation(NamedParams) + `\s*:\s*` + lit),
		regexp.MustCompile(`\b` + alternation(Controls) + `\s*\([^;]{0,200}?\b(?:child|text)\s*:\s*(?:(?:const\s+)?\w+\s*\(\s*)?` + lit),
	}}
}

// Windows returns every surface match in text ordered by literal offset.
// A literal matched by several surfaces is reported once.
func (s *Surfaces) Windows(text string) []Window {
	seen := make(map[int]bool)
	var out []Window
	for _, re := range s.res {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if m[2] < 0 || seen[m[2]] || isTranslationArg(text[:m[2]]) {
				continue
			}
			seen[m[2]] = true
			out = append(out, Window{Start: m[0], End: m[1], LitStart: m[2], LitEnd: m[3]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LitStart < out[j].LitStart })
	return out
}

// isTranslationArg reports whether the text before a literal ends in a
// tr( call, the form left behind by a non-accessor rewrite.
func isTranslationArg(before string) bool {
	before = strings.TrimRight(before, " \t\r\n")
	if !strings.HasSuffix(before, "(") {
		return false
	}
	before = strings.TrimRight(before[:len(before)-1], " \t")
	if !strings.HasSuffix(before, TranslateFunc) {
		return false
	}
	rest := before[:len(before)-len(TranslateFunc)]
	return rest == "" || !isIdentByte(rest[len(rest)-1])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func alternation(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	return `(?:` + strings.Join(quoted, "|") + `)`
}

// Unquote returns the text of a quoted literal token with escapes
// resolved. It reports false when tok is not a complete literal.
func Unquote(tok string) (string, bool) {
	if len(tok) < 2 {
		return "", false
	}
	q := tok[0]
	if (q != '"' && q != '\'') || tok[len(tok)-1] != q {
		return "", false
	}
	body := tok[1 : len(tok)-1]
	if !strings.Contains(body, `\`) {
		return body, true
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if r, n, ok := unicodeEscape(body[i+1:]); ok {
				b.WriteRune(r)
				i += n
				continue
			}
			b.WriteByte('u')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String(), true
}

// unicodeEscape decodes XXXX or {X...} following \u.
func unicodeEscape(s string) (rune, int, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	if len(s) < 4 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), 4, true
}

// Quote renders value as a literal token using quote (' or ").
func Quote(value string, quote byte) string {
	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '$':
			b.WriteString(`\$`)
		case quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
