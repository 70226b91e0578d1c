package extract

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/minios-linux/arbkit/classify"
)

// contextRadius is how many bytes around a literal are kept as context.
const contextRadius = 40

// DefaultAccessorClass is the generated localization class name.
const DefaultAccessorClass = "AppLocalizations"

// Literal is one extracted string.
type Literal struct {
	// Value is the unescaped text between the quotes.
	Value string
	// SourcePath is the file the literal was found in.
	SourcePath string
	// Context is the text surrounding the literal.
	Context string
	// Offset is the byte offset of the opening quote.
	Offset int
	// Line is the 1-based line number.
	Line int
}

// Options configure an Extractor.
type Options struct {
	// AccessorClass is the localization class used for reverse lookups.
	AccessorClass string
	// WorkDir is the project root searched for an existing ARB file.
	WorkDir string
	// ARBPath is the template ARB file. When it exists it is used for
	// reverse lookups instead of searching WorkDir.
	ARBPath string
	// ExtraConstructors are additional display constructors.
	ExtraConstructors []string
}

// Extractor finds translatable literals. Create one per run; it is safe
// for concurrent use.
type Extractor struct {
	cls      *classify.Classifier
	surfaces *Surfaces
	accessor *regexp.Regexp
	workDir  string
	arbPath  string

	lookupOnce sync.Once
	lookup     map[string]string
}

// NewExtractor compiles the surfaces and the accessor matcher. A nil
// classifier means the default rules.
func NewExtractor(cls *classify.Classifier, opts Options) *Extractor {
	if cls == nil {
		cls = classify.Default()
	}
	class := opts.AccessorClass
	if class == "" {
		class = DefaultAccessorClass
	}
	return &Extractor{
		cls:      cls,
		surfaces: CompileSurfaces(opts.ExtraConstructors),
		accessor: regexp.MustCompile(`\b` + regexp.QuoteMeta(class) + `\.of\(\s*context\s*\)!?\.([A-Za-z_]\w*)`),
		workDir:  opts.WorkDir,
		arbPath:  opts.ARBPath,
	}
}

// Extract returns the translatable literals of one file in source order.
// Literals that also appear inside a rich-text zone are dropped.
func (e *Extractor) Extract(path, text string) []Literal {
	mask := NewMask(text)
	var lits []Literal

	for _, w := range e.surfaces.Windows(text) {
		if mask.Masked(w.LitStart) {
			continue
		}
		value, ok := Unquote(text[w.LitStart:w.LitEnd])
		if !ok {
			continue
		}
		if !e.cls.IsTranslatable(value, mask.LineText(text, w.LitStart)) {
			continue
		}
		lits = append(lits, e.literal(path, text, mask, value, w.LitStart))
	}

	if e.accessor.MatchString(text) {
		known := e.known()
		for _, m := range e.accessor.FindAllStringSubmatchIndex(text, -1) {
			if mask.Masked(m[0]) {
				continue
			}
			if value := known[text[m[2]:m[3]]]; value != "" {
				lits = append(lits, e.literal(path, text, mask, value, m[0]))
			}
		}
		sortLiterals(lits)
	}

	rich := mask.RichValues(text)
	if len(rich) == 0 {
		return lits
	}
	out := lits[:0]
	for _, l := range lits {
		if !rich[l.Value] {
			out = append(out, l)
		}
	}
	return out
}

func (e *Extractor) literal(path, text string, mask *Mask, value string, offset int) Literal {
	lo, hi := offset-contextRadius, offset+contextRadius
	if lo < 0 {
		lo = 0
	}
	if hi > len(text) {
		hi = len(text)
	}
	return Literal{
		Value:      value,
		SourcePath: path,
		Context:    strings.ToValidUTF8(text[lo:hi], ""),
		Offset:     offset,
		Line:       mask.Line(offset),
	}
}

func sortLiterals(lits []Literal) {
	sort.SliceStable(lits, func(i, j int) bool { return lits[i].Offset < lits[j].Offset })
}

// Values returns the distinct literal values in order of first occurrence.
func Values(lits []Literal) []string {
	seen := make(map[string]bool, len(lits))
	var out []string
	for _, l := range lits {
		if !seen[l.Value] {
			seen[l.Value] = true
			out = append(out, l.Value)
		}
	}
	return out
}
