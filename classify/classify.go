// Package classify decides whether a string literal found in UI source code
// is user-facing text worth translating or technical noise (URLs, asset
// paths, identifiers, version numbers, colors and so on).
//
// Classification is heuristic: an ordered list of exclude rules is OR-ed
// together, followed by a handful of content checks. False positives and
// negatives are expected; the rule list can be replaced or extended by the
// user to tune it for a project.
package classify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultExcludePatterns is the built-in exclude rule list. A literal that
// matches any of these is never offered for translation.
var DefaultExcludePatterns = []string{
	// URLs
	`^https?://`,
	`^www\.`,
	// Generic URI schemes (mailto:, tel:, myapp://...)
	`^[a-zA-Z][a-zA-Z0-9+.\-]*:\S+$`,
	// Asset paths
	`^(?:assets|images|img|icons|fonts|packages)/`,
	// Binary and text file extensions
	`(?i)\.(?:png|jpe?g|gif|svg|webp|bmp|ico|ttf|otf|woff2?|json|arb|dart|txt|csv|xml|ya?ml|pdf|mp3|mp4|wav|zip)$`,
	// Bare paths (no spaces)
	`^[^\s]*/[^\s]*$`,
	// Pure numbers
	`^-?\d+(?:[.,]\d+)*$`,
	// Version triples
	`^\d+\.\d+\.\d+`,
	// UUIDs
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
	// Hex colors
	`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`,
	// ClassName.property
	`^[A-Z][A-Za-z0-9]*\.[a-z][A-Za-z0-9]*$`,
	// Annotations
	`^@\w+`,
	// Private identifiers
	`^_\w+`,
}

var (
	interpolationRe = regexp.MustCompile(`\$\{|\$[A-Za-z_]`)
	constantRe      = regexp.MustCompile(`^[A-Z][A-Z0-9_]{2,}$`)
	camelCaseRe     = regexp.MustCompile(`^[a-z][a-z0-9]*[A-Z][A-Za-z0-9]*$`)
	snakeCaseRe     = regexp.MustCompile(`^[a-z][a-z0-9]*(?:_[a-z0-9]+)+$`)
	directiveRe     = regexp.MustCompile(`^\s*(?:import|export|part)\b`)
)

// operatorTokens mark code fragments rather than prose.
var operatorTokens = []string{"=", "&&", "||", "()", "[]"}

// technicalCalls are callees whose string arguments are never UI text.
var technicalCalls = []string{"Key(", "ValueKey(", "RegExp(", "Uri.parse(", "print(", "debugPrint("}

// PatternError reports a user-supplied exclude pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Classifier holds a compiled exclude rule set. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	rules   []*regexp.Regexp
	sources []string
}

// New compiles an exclude rule list. An empty list selects
// DefaultExcludePatterns. A non-empty list replaces the defaults unless
// appendDefaults is set, in which case it is added after them.
//
// Patterns that fail to compile are dropped one by one; the returned error
// joins a *PatternError for each of them while the classifier stays usable
// with the remaining rules.
func New(patterns []string, appendDefaults bool) (*Classifier, error) {
	var list []string
	switch {
	case len(patterns) == 0:
		list = DefaultExcludePatterns
	case appendDefaults:
		list = append(append([]string{}, DefaultExcludePatterns...), patterns...)
	default:
		list = patterns
	}

	c := &Classifier{}
	var errs []error
	for _, p := range list {
		re, err := regexp.Compile(p)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: p, Err: err})
			continue
		}
		c.rules = append(c.rules, re)
		c.sources = append(c.sources, p)
	}
	return c, errors.Join(errs...)
}

// Default returns a classifier with the built-in rules.
func Default() *Classifier {
	c, _ := New(nil, false)
	return c
}

// Patterns returns the source text of the active rules in order.
func (c *Classifier) Patterns() []string {
	return append([]string(nil), c.sources...)
}

// IsExcluded reports whether value matches an exclude rule. The optional
// context (the source line holding the literal) adds directive and
// technical-call checks.
func (c *Classifier) IsExcluded(value, context string) bool {
	for _, re := range c.rules {
		if re.MatchString(value) {
			return true
		}
	}
	if context == "" {
		return false
	}
	if directiveRe.MatchString(context) {
		return true
	}
	for _, call := range technicalCalls {
		if strings.Contains(context, call+`'`+value) || strings.Contains(context, call+`"`+value) {
			return true
		}
	}
	return false
}

// IsTranslatable reports whether value is user-facing text: it passes the
// exclude rules and does not look like code.
func (c *Classifier) IsTranslatable(value, context string) bool {
	if IsCodeLike(value) {
		return false
	}
	return !c.IsExcluded(value, context)
}

// IsCodeLike applies the content heuristics shared by every rule set:
// too short, interpolated, constant-like, identifier-shaped or containing
// operators.
func IsCodeLike(value string) bool {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) < 2 {
		return true
	}
	if interpolationRe.MatchString(value) {
		return true
	}
	if constantRe.MatchString(trimmed) {
		return true
	}
	if !strings.ContainsAny(trimmed, " \t") && (camelCaseRe.MatchString(trimmed) || snakeCaseRe.MatchString(trimmed)) {
		return true
	}
	for _, tok := range operatorTokens {
		if strings.Contains(value, tok) {
			return true
		}
	}
	return false
}
