// Package arbfile implements reading and writing of Flutter ARB (Application
// Resource Bundle) files.
//
// ARB files are JSON files with a specific structure:
//
//   - "@@locale" holds the BCP-47 language code (e.g. "en", "ru"). It is
//     passed through when present and never generated.
//   - Keys starting with "@" (other than "@@locale") are metadata entries
//     (e.g. "@greeting") and are preserved verbatim.
//   - All other keys map to a Value: a plain string, a plural variant
//     object {"one", "other"} or a gender variant object
//     {"male", "female", "other"}.
//
// Round-trip fidelity: key order from the source file is preserved, and
// metadata keys added through SetMeta immediately follow their key.
package arbfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/minios-linux/arbkit/fileutil"
)

// ---------------------------------------------------------------------------
// File model
// ---------------------------------------------------------------------------

// entry is a single key in the ARB file.
type entry struct {
	key      string
	value    Value           // decoded value (non-meta only)
	isMeta   bool            // true for @-keys (metadata / @@locale)
	rawValue json.RawMessage // original JSON value bytes (preserved for meta)
}

// File represents a parsed ARB file.
type File struct {
	// locale is the value of @@locale.
	locale string
	// entries stores all keys in document order.
	entries []entry
	// index maps key → index in entries.
	index map[string]int
}

// New returns an empty File. An empty locale means no @@locale key is
// written.
func New(locale string) *File {
	return &File{locale: locale, index: make(map[string]int)}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses an ARB file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses ARB content from a byte slice.
func Parse(data []byte) (*File, error) {
	// Token streaming keeps the key order, which map decoding would lose.
	f := New("")

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing ARB: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing ARB: expected '{', got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing ARB key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing ARB: expected string key, got %T", keyTok)
		}

		var rawVal json.RawMessage
		if err := dec.Decode(&rawVal); err != nil {
			return nil, fmt.Errorf("parsing ARB value for %q: %w", key, err)
		}

		if key == "@@locale" {
			var s string
			_ = json.Unmarshal(rawVal, &s)
			f.locale = s
			continue
		}

		e := entry{
			key:      key,
			isMeta:   strings.HasPrefix(key, "@"),
			rawValue: rawVal,
		}
		if !e.isMeta {
			e.value = decodeValue(rawVal)
		}
		if idx, dup := f.index[key]; dup {
			// Last one wins, like encoding/json.
			f.entries[idx] = e
			continue
		}
		f.index[key] = len(f.entries)
		f.entries = append(f.entries, e)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing ARB: %w", err)
	}

	return f, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Locale returns the @@locale value.
func (f *File) Locale() string { return f.locale }

// Keys returns all translatable (non-metadata) keys in document order.
func (f *File) Keys() []string {
	var keys []string
	for _, e := range f.entries {
		if !e.isMeta {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Len returns the number of translatable keys.
func (f *File) Len() int {
	n := 0
	for _, e := range f.entries {
		if !e.isMeta {
			n++
		}
	}
	return n
}

// HasKey reports whether a translatable key exists.
func (f *File) HasKey(key string) bool {
	idx, ok := f.index[key]
	return ok && !f.entries[idx].isMeta
}

// Get returns the display text for a translatable key (the "other" form
// for variant values).
func (f *File) Get(key string) (string, bool) {
	v, ok := f.Value(key)
	if !ok {
		return "", false
	}
	return v.Text(), true
}

// Value returns the decoded value for a translatable key.
func (f *File) Value(key string) (Value, bool) {
	if idx, ok := f.index[key]; ok && !f.entries[idx].isMeta {
		return f.entries[idx].value, true
	}
	return nil, false
}

// Set replaces the value of an existing translatable key.
// Returns false if the key is not found or is metadata.
func (f *File) Set(key string, v Value) bool {
	idx, ok := f.index[key]
	if !ok || f.entries[idx].isMeta {
		return false
	}
	f.entries[idx].value = v
	f.entries[idx].rawValue = nil
	return true
}

// Append adds a new translatable key at the end of the file.
// Returns false if the key already exists.
func (f *File) Append(key string, v Value) bool {
	if _, ok := f.index[key]; ok || strings.HasPrefix(key, "@") {
		return false
	}
	f.index[key] = len(f.entries)
	f.entries = append(f.entries, entry{key: key, value: v})
	return true
}

// HasMeta reports whether the metadata entry @key exists.
func (f *File) HasMeta(key string) bool {
	_, ok := f.index["@"+key]
	return ok
}

// SetMeta stores {"description": description} under @key, placed right
// after key. Existing metadata is replaced in place.
func (f *File) SetMeta(key, description string) {
	raw, _ := json.Marshal(struct {
		Description string `json:"description"`
	}{description})
	metaKey := "@" + key

	if idx, ok := f.index[metaKey]; ok {
		f.entries[idx].rawValue = raw
		return
	}

	e := entry{key: metaKey, isMeta: true, rawValue: raw}
	pos := len(f.entries)
	if idx, ok := f.index[key]; ok {
		pos = idx + 1
	}
	f.entries = append(f.entries, entry{})
	copy(f.entries[pos+1:], f.entries[pos:])
	f.entries[pos] = e
	f.reindex()
}

// Description returns the description stored under @key, if any.
func (f *File) Description(key string) (string, bool) {
	idx, ok := f.index["@"+key]
	if !ok {
		return "", false
	}
	var meta struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(f.entries[idx].rawValue, &meta); err != nil {
		return "", false
	}
	return meta.Description, true
}

// KeyForValue returns the first key whose usable value has canonical form
// equal to v.
func (f *File) KeyForValue(v Value) (string, bool) {
	c := Canonical(v)
	if c == "" {
		return "", false
	}
	for _, e := range f.entries {
		if !e.isMeta && Canonical(e.value) == c {
			return e.key, true
		}
	}
	return "", false
}

func (f *File) reindex() {
	f.index = make(map[string]int, len(f.entries))
	for i, e := range f.entries {
		f.index[e.key] = i
	}
}

// Stats returns (total keys, variant keys, keys carrying metadata).
func (f *File) Stats() (total, variants, annotated int) {
	for _, e := range f.entries {
		if e.isMeta {
			continue
		}
		total++
		switch e.value.(type) {
		case Plural, Gender:
			variants++
		}
		if f.HasMeta(e.key) {
			annotated++
		}
	}
	return total, variants, annotated
}

// SourceValues returns a map of key → display text.
func (f *File) SourceValues() map[string]string {
	m := make(map[string]string, len(f.index))
	for _, e := range f.entries {
		if !e.isMeta {
			m[e.key] = e.value.Text()
		}
	}
	return m
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the ARB file to JSON with 2-space indentation.
// The @@locale key is always written first.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	first := true
	writeKey := func(key string) {
		if first {
			buf.WriteString("{\n")
			first = false
		} else {
			buf.WriteString(",\n")
		}
		buf.WriteString("  ")
		buf.Write(encodeString(key))
		buf.WriteString(": ")
	}

	if f.locale != "" {
		writeKey("@@locale")
		buf.Write(encodeString(f.locale))
	}

	for _, e := range f.entries {
		writeKey(e.key)
		if e.isMeta {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, e.rawValue, "  ", "  "); err != nil {
				buf.Write(e.rawValue)
			} else {
				buf.Write(pretty.Bytes())
			}
			continue
		}
		if err := writeValue(&buf, e.value); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", e.key, err)
		}
	}

	if first {
		return []byte("{}\n"), nil
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

// WriteFile serialises and atomically writes to path, creating parent
// directories as needed.
func (f *File) WriteFile(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, data, fileutil.FileMode(path, 0644))
}
