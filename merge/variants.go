package merge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/minios-linux/arbkit/arbfile"
)

var (
	numberWordRe = regexp.MustCompile(`\b\d+\s+[A-Za-z]+s\b`)
	integerRe    = regexp.MustCompile(`\b\d+\b`)
	countWordRe  = regexp.MustCompile(`\{count\}(\s+)([A-Za-z]+)`)
	pronounRe    = regexp.MustCompile(`(?i)\b(?:he|she|they|his|her|their)\b`)
)

const (
	pluralMarker     = "(s)"
	countPlaceholder = "{count}"
)

// HasPluralTrigger reports whether s needs singular and plural forms:
// it contains "(s)", a {count} placeholder, or a "<number> <word>s" phrase.
func HasPluralTrigger(s string) bool {
	return strings.Contains(s, pluralMarker) ||
		strings.Contains(s, countPlaceholder) ||
		numberWordRe.MatchString(s)
}

// HasGenderTrigger reports whether s contains a third-person pronoun.
func HasGenderTrigger(s string) bool {
	return pronounRe.MatchString(s)
}

// Expand turns raw into the value stored in the resource file: a Plural
// when a plural trigger fires, otherwise a Gender when a pronoun is
// present, otherwise the plain string.
func Expand(raw string) arbfile.Value {
	switch {
	case HasPluralTrigger(raw):
		return pluralize(raw)
	case HasGenderTrigger(raw):
		return genderize(raw)
	}
	return arbfile.Plain(raw)
}

func pluralize(s string) arbfile.Plural {
	s = integerRe.ReplaceAllString(s, countPlaceholder)
	if strings.Contains(s, pluralMarker) {
		return arbfile.Plural{
			One:   strings.ReplaceAll(s, pluralMarker, ""),
			Other: strings.ReplaceAll(s, pluralMarker, "s"),
		}
	}
	inflect := func(form func(string) string) string {
		return countWordRe.ReplaceAllStringFunc(s, func(m string) string {
			sub := countWordRe.FindStringSubmatch(m)
			return countPlaceholder + sub[1] + form(sub[2])
		})
	}
	return arbfile.Plural{One: inflect(singularOf), Other: inflect(pluralOf)}
}

func singularOf(w string) string {
	lw := strings.ToLower(w)
	switch {
	case len(w) > 3 && strings.HasSuffix(lw, "ies"):
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(lw, "sses"), strings.HasSuffix(lw, "xes"),
		strings.HasSuffix(lw, "ches"), strings.HasSuffix(lw, "shes"):
		return w[:len(w)-2]
	case strings.HasSuffix(lw, "ss"):
		return w
	case strings.HasSuffix(lw, "s"):
		return w[:len(w)-1]
	}
	return w
}

func pluralOf(w string) string {
	lw := strings.ToLower(w)
	switch {
	case strings.HasSuffix(lw, "ss"), strings.HasSuffix(lw, "x"),
		strings.HasSuffix(lw, "ch"), strings.HasSuffix(lw, "sh"):
		return w + "es"
	case strings.HasSuffix(lw, "s"):
		return w
	case len(w) > 1 && strings.HasSuffix(lw, "y") && !strings.ContainsAny(lw[len(lw)-2:len(lw)-1], "aeiou"):
		return w[:len(w)-1] + "ies"
	}
	return w + "s"
}

// pronoun forms per gender branch, split into subject and possessive.
var pronounForms = map[string][3]string{
	"subject":    {"he", "she", "they"},
	"possessive": {"his", "her", "their"},
}

func pronounClass(p string) string {
	switch strings.ToLower(p) {
	case "his", "her", "their":
		return "possessive"
	}
	return "subject"
}

func genderize(s string) arbfile.Gender {
	form := func(branch int) string {
		return pronounRe.ReplaceAllStringFunc(s, func(m string) string {
			return matchCase(m, pronounForms[pronounClass(m)][branch])
		})
	}
	return arbfile.Gender{Male: form(0), Female: form(1), Other: form(2)}
}

// matchCase gives repl the capitalization pattern of orig.
func matchCase(orig, repl string) string {
	switch {
	case orig == strings.ToUpper(orig) && len(orig) > 1:
		return strings.ToUpper(repl)
	case orig[0] >= 'A' && orig[0] <= 'Z':
		return strings.ToUpper(repl[:1]) + repl[1:]
	}
	return repl
}

// AmbiguousTerms are short action words that cannot be translated well
// without knowing where they appear.
var AmbiguousTerms = []string{"ok", "yes", "no", "cancel", "submit", "save", "edit", "delete"}

// ambiguityNote is the description stored under @key for ambiguous terms.
const ambiguityNote = "Ambiguous term %q: describe where and how it is used so translators can pick the right wording."

// IsAmbiguous reports whether s equals one of AmbiguousTerms, ignoring case
// and surrounding space.
func IsAmbiguous(s string) bool {
	s = strings.TrimSpace(s)
	for _, term := range AmbiguousTerms {
		if strings.EqualFold(s, term) {
			return true
		}
	}
	return false
}

// Annotate adds an @key description to every ambiguous key or plain value
// lacking metadata, and returns the annotated keys in file order.
func Annotate(f *arbfile.File) []string {
	var annotated []string
	for _, key := range f.Keys() {
		if f.HasMeta(key) {
			continue
		}
		v, _ := f.Value(key)
		term := ""
		if p, ok := v.(arbfile.Plain); ok && IsAmbiguous(string(p)) {
			term = string(p)
		} else if IsAmbiguous(key) {
			term = key
		}
		if term == "" {
			continue
		}
		f.SetMeta(key, fmt.Sprintf(ambiguityNote, term))
		annotated = append(annotated, key)
	}
	return annotated
}
