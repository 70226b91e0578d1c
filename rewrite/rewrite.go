// Package rewrite replaces extracted string literals in Dart source with
// references to their resource keys.
//
// The rewriter reuses the extraction surfaces, so only literals that
// extraction would report are touched. Each substitution replaces exactly
// the quoted token; everything else in the file is preserved byte for byte.
package rewrite

import (
	"regexp"
	"sort"
	"strings"

	"github.com/minios-linux/arbkit/extract"
	"github.com/minios-linux/arbkit/keygen"
)

// opaqueRe matches tokens whose brackets do not count when walking back to
// an enclosing const: literals and comments. The leftmost match wins, so
// "//" inside a literal and quotes inside a comment are not misread.
var opaqueRe = regexp.MustCompile(`//[^\n]*|/\*(?s:.*?)\*/|` + extract.LiteralRe.String())

// Options configure a Rewriter.
type Options struct {
	// UseAccessor emits <AccessorClass>.of(context).<key>; otherwise
	// tr("<key>") is emitted.
	UseAccessor bool
	// PreserveConst keeps enclosing const modifiers. Ignored when
	// UseAccessor is set, since accessor calls are never constant.
	PreserveConst bool
	// AccessorClass is the generated localization class.
	AccessorClass string
	// ExtraConstructors are additional display constructors.
	ExtraConstructors []string
}

// Record is the result of rewriting one file.
type Record struct {
	Content      string
	Changed      bool
	ImportNeeded bool
	Replacements int
}

// Rewriter substitutes literals. Create one per run; it is safe for
// concurrent use.
type Rewriter struct {
	opts     Options
	surfaces *extract.Surfaces
}

// New compiles the surfaces used to locate literals.
func New(opts Options) *Rewriter {
	if opts.AccessorClass == "" {
		opts.AccessorClass = extract.DefaultAccessorClass
	}
	return &Rewriter{opts: opts, surfaces: extract.CompileSurfaces(opts.ExtraConstructors)}
}

// edit replaces content[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// Rewrite replaces every literal whose value has a key in replacements
// (value → key). Literals on ignored or rich-text lines are left alone.
func (r *Rewriter) Rewrite(content string, replacements map[string]string) Record {
	rec := Record{Content: content}
	if len(replacements) == 0 {
		return rec
	}

	byToken := make(map[string]string, 2*len(replacements))
	for value, key := range replacements {
		byToken[extract.Quote(value, '"')] = key
		byToken[extract.Quote(value, '\'')] = key
	}

	bang := strings.Contains(content, r.opts.AccessorClass+".of(context)!.")
	mask := extract.NewMask(content)
	opaque := opaqueSpans(content)
	dropConst := r.opts.UseAccessor || !r.opts.PreserveConst

	var edits []edit
	constSeen := make(map[int]bool)
	for _, w := range r.surfaces.Windows(content) {
		if mask.Masked(w.LitStart) {
			continue
		}
		tok := content[w.LitStart:w.LitEnd]
		key, ok := byToken[tok]
		if !ok {
			value, valid := extract.Unquote(tok)
			if !valid {
				continue
			}
			if key, ok = replacements[value]; !ok {
				continue
			}
		}

		edits = append(edits, edit{start: w.LitStart, end: w.LitEnd, text: r.expression(key, bang)})
		rec.Replacements++

		if dropConst {
			for _, c := range enclosingConsts(content, w.LitStart, opaque) {
				if !constSeen[c[0]] {
					constSeen[c[0]] = true
					edits = append(edits, edit{start: c[0], end: c[1]})
				}
			}
		}
	}
	if rec.Replacements == 0 {
		return rec
	}

	rec.Content = apply(content, edits)
	rec.Changed = rec.Content != content
	rec.ImportNeeded = rec.Changed && r.opts.UseAccessor
	return rec
}

func (r *Rewriter) expression(key string, bang bool) string {
	if !r.opts.UseAccessor {
		return extract.TranslateFunc + "(" + extract.Quote(key, '"') + ")"
	}
	of := r.opts.AccessorClass + ".of(context)"
	if bang {
		of += "!"
	}
	return of + "." + keygen.Identifier(key)
}

// apply performs edits from the end of the file backwards so earlier
// offsets stay valid.
func apply(content string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := content
	for _, e := range edits {
		out = out[:e.start] + e.text + out[e.end:]
	}
	return out
}

// opaqueSpans maps the end offset of every literal token and comment to
// its start.
func opaqueSpans(content string) map[int]int {
	spans := make(map[int]int)
	for _, loc := range opaqueRe.FindAllStringIndex(content, -1) {
		spans[loc[1]] = loc[0]
	}
	return spans
}

// enclosingConsts walks backwards from offset to the start of the
// statement and returns the byte ranges of const modifiers that apply to
// the constructor calls and list literals enclosing offset.
func enclosingConsts(content string, offset int, opaque map[int]int) [][2]int {
	var out [][2]int
	depth := 0
	for i := offset - 1; i >= 0; i-- {
		if start, ok := opaque[i+1]; ok && start < i {
			i = start
			continue
		}
		switch content[i] {
		case ')', ']', '}':
			depth++
		case '(', '[':
			if depth > 0 {
				depth--
				continue
			}
			if c, ok := constBefore(content, i); ok {
				out = append(out, c)
			}
		case '{':
			if depth == 0 {
				return out
			}
			depth--
		case ';':
			if depth == 0 {
				return out
			}
		}
	}
	return out
}

// constBefore finds a const keyword governing the opener at content[i]:
// "const Name(", "const Name.named(", "const Name<T>(", "const [" or
// "const <T>[".
func constBefore(content string, i int) ([2]int, bool) {
	j := skipSpaceBack(content, i)
	j = skipTypeArgsBack(content, j)
	if content[i] == '(' {
		k := j
		for k > 0 && (isIdent(content[k-1]) || content[k-1] == '.') {
			k--
		}
		if k == j {
			return [2]int{}, false
		}
		j = skipSpaceBack(content, k)
	}

	const kw = "const"
	if j < len(kw) || content[j-len(kw):j] != kw {
		return [2]int{}, false
	}
	start := j - len(kw)
	if start > 0 && isIdent(content[start-1]) {
		return [2]int{}, false
	}
	end := j
	for end < len(content) && strings.IndexByte(" \t\r\n", content[end]) >= 0 {
		end++
	}
	return [2]int{start, end}, true
}

// skipSpaceBack returns the offset just after the last non-space byte
// before i.
func skipSpaceBack(content string, i int) int {
	for i > 0 && strings.IndexByte(" \t\r\n", content[i-1]) >= 0 {
		i--
	}
	return i
}

// skipTypeArgsBack steps over a balanced <...> ending just before i.
func skipTypeArgsBack(content string, i int) int {
	if i == 0 || content[i-1] != '>' {
		return i
	}
	depth := 0
	for k := i - 1; k >= 0; k-- {
		switch content[k] {
		case '>':
			depth++
		case '<':
			depth--
			if depth == 0 {
				return skipSpaceBack(content, k)
			}
		case ';', '{', '}', '(', ')':
			return i
		}
	}
	return i
}

func isIdent(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
