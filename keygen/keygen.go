// Package keygen turns literal values into resource keys.
//
// A key is derived from the lower-cased ASCII words of the value and joined
// in one of three naming conventions. Uniqueness within a run is guaranteed
// by appending _1, _2, ... to a key that is already taken.
package keygen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format is a key naming convention.
type Format string

const (
	// FormatSnake joins words with underscores: hello_world.
	FormatSnake Format = "snake_case"
	// FormatCamel capitalizes every word after the first: helloWorld.
	FormatCamel Format = "camelCase"
	// FormatDot joins words with dots: hello.world.
	FormatDot Format = "dot.case"
)

// Formats lists all supported formats.
var Formats = []Format{FormatSnake, FormatCamel, FormatDot}

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "snake_case", "snake":
		return FormatSnake, nil
	case "camelcase", "camel":
		return FormatCamel, nil
	case "dot.case", "dot":
		return FormatDot, nil
	}
	return "", fmt.Errorf("unknown key format %q (valid: snake_case, camelCase, dot.case)", s)
}

// emptyWord is used when a value contains no alphanumeric characters.
const emptyWord = "emptyString"

var (
	wordRe  = regexp.MustCompile(`[a-z0-9]+`)
	validRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Base derives the key for value without any uniqueness suffix.
func Base(value string, format Format) string {
	words := wordRe.FindAllString(strings.ToLower(value), -1)
	if len(words) == 0 {
		words = []string{emptyWord}
	}
	if words[0][0] >= '0' && words[0][0] <= '9' {
		words[0] = "text" + words[0]
	}

	switch format {
	case FormatCamel:
		var b strings.Builder
		b.WriteString(words[0])
		for _, w := range words[1:] {
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(w[1:])
		}
		return b.String()
	case FormatDot:
		return strings.Join(words, ".")
	default:
		return strings.Join(words, "_")
	}
}

// Generate derives a key for value that is not present in existing.
// existing is only read.
func Generate(value string, format Format, existing map[string]bool) string {
	return Unique(Base(value, format), existing)
}

// Unique returns base, or base with the smallest numeric suffix _N that is
// not present in existing.
func Unique(base string, existing map[string]bool) string {
	if !existing[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !existing[candidate] {
			return candidate
		}
	}
}

// IsValid reports whether key can be used as a bare accessor identifier.
func IsValid(key string) bool {
	return validRe.MatchString(key)
}

// Identifier maps key to a valid accessor identifier. Valid keys are
// returned unchanged; otherwise every disallowed character becomes an
// underscore and a leading digit is prefixed with one.
func Identifier(key string) string {
	if IsValid(key) {
		return key
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// Assign gives every value in values a key, in order. Keys from reuse
// (value -> key) are honoured first; all other values get a fresh key that
// collides neither with existing nor with keys assigned earlier in the
// batch. Duplicate values share one key.
//
// Assign must run sequentially over the whole batch: suffix choice depends
// on the keys handed out before.
func Assign(values []string, format Format, existing map[string]bool, reuse map[string]string) map[string]string {
	taken := make(map[string]bool, len(existing)+len(values))
	for k := range existing {
		taken[k] = true
	}
	for _, k := range reuse {
		taken[k] = true
	}

	out := make(map[string]string, len(values))
	for _, v := range values {
		if _, done := out[v]; done {
			continue
		}
		if k, ok := reuse[v]; ok {
			out[v] = k
			continue
		}
		k := Generate(v, format, taken)
		taken[k] = true
		out[v] = k
	}
	return out
}
