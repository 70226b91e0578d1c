// Package merge implements the resource store: merging freshly generated
// key/value pairs into an ARB file without losing existing entries.
//
//   - Existing entries are kept as they are; new entries are appended.
//   - Values that need plural or gender branches are expanded into
//     variant objects before they are stored.
//   - Short context-free action words get an @key description asking for
//     disambiguating context.
package merge

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/minios-linux/arbkit/arbfile"
	"github.com/minios-linux/arbkit/keygen"
)

// Mode selects how a new entry is reconciled with the existing table.
type Mode string

const (
	// ModeDedupe skips values already present under any key and mints a
	// suffixed key when the suggested key belongs to a different value.
	ModeDedupe Mode = "dedupe"
	// ModeVerbatim writes the caller's key as given.
	ModeVerbatim Mode = "verbatim"
)

// ParseMode converts a user-supplied name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDedupe, ModeVerbatim:
		return Mode(s), nil
	case "":
		return ModeDedupe, nil
	}
	return "", fmt.Errorf("unknown merge mode %q (valid: dedupe, verbatim)", s)
}

// Entry is a generated key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Options control a merge.
type Options struct {
	Mode Mode
}

// Result reports what a merge did.
type Result struct {
	// Added is the number of keys appended to the table.
	Added int
	// Reused maps source values to the key they already had.
	Reused map[string]string
	// Conflicts lists keys whose existing value was kept over a different
	// new value (verbatim mode).
	Conflicts []string
	// Annotated lists keys that received an ambiguity description.
	Annotated []string
	// Keys maps every merged source value to its final key.
	Keys map[string]string
}

// Load reads the ARB file at path. A missing file yields an empty table.
// A malformed file is logged and also yields an empty table, which is
// written fresh on the next save.
func Load(path string) (*arbfile.File, error) {
	f, err := arbfile.ParseFile(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return arbfile.New(""), nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return nil, err
	}
	log.Warn().Err(err).Str("file", path).Msg("Malformed resource file, starting from an empty table")
	return arbfile.New(""), nil
}

// Merge folds entries into f in order and then runs the ambiguity pass.
func Merge(f *arbfile.File, entries []Entry, opts Options) Result {
	if opts.Mode == "" {
		opts.Mode = ModeDedupe
	}

	res := Result{
		Reused: make(map[string]string),
		Keys:   make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		v := Expand(e.Value)

		if opts.Mode == ModeDedupe {
			if key, ok := existingKey(f, e.Value, v); ok {
				res.Reused[e.Value] = key
				res.Keys[e.Value] = key
				continue
			}
			key := e.Key
			if f.HasKey(key) {
				existing, _ := f.Value(key)
				if arbfile.IsUsable(existing) {
					key = keygen.Unique(key, keySet(f))
				} else {
					f.Set(key, v)
					res.Added++
					res.Keys[e.Value] = key
					continue
				}
			}
			f.Append(key, v)
			res.Added++
			res.Keys[e.Value] = key
			continue
		}

		// Verbatim.
		if existing, ok := f.Value(e.Key); ok {
			switch {
			case !arbfile.IsUsable(existing):
				f.Set(e.Key, v)
				res.Added++
			case arbfile.Canonical(existing) != arbfile.Canonical(v) &&
				arbfile.Canonical(existing) != arbfile.Canonical(arbfile.Plain(e.Value)):
				log.Warn().Str("key", e.Key).Str("value", e.Value).Msg("Key already holds a different value, keeping the existing one")
				res.Conflicts = append(res.Conflicts, e.Key)
			}
			res.Keys[e.Value] = e.Key
			continue
		}
		f.Append(e.Key, v)
		res.Added++
		res.Keys[e.Value] = e.Key
	}

	res.Annotated = Annotate(f)
	return res
}

// Save writes f to path atomically.
func Save(f *arbfile.File, path string) error {
	if err := f.WriteFile(path); err != nil {
		return fmt.Errorf("saving resource file: %w", err)
	}
	return nil
}

// existingKey finds the key already holding raw, either as plain text or
// in its expanded variant form v.
func existingKey(f *arbfile.File, raw string, v arbfile.Value) (string, bool) {
	if k, ok := f.KeyForValue(arbfile.Plain(raw)); ok {
		return k, true
	}
	return f.KeyForValue(v)
}

func keySet(f *arbfile.File) map[string]bool {
	keys := f.Keys()
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// ReuseIndex returns source text → key for every usable entry of f, so a
// key assignment can reuse keys for values that are already stored.
// Plural and gender entries are indexed by their "other" form.
func ReuseIndex(f *arbfile.File) map[string]string {
	m := make(map[string]string)
	for _, k := range f.Keys() {
		v, _ := f.Value(k)
		if !arbfile.IsUsable(v) {
			continue
		}
		if _, seen := m[v.Text()]; !seen {
			m[v.Text()] = k
		}
	}
	return m
}
