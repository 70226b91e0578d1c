package arbfile

import (
	"bytes"
	"encoding/json"
)

// Value is the value of a translatable ARB key. It is one of Plain,
// Plural, Gender or Invalid.
type Value interface {
	// Text returns the display text: the string itself, or the "other"
	// form of a variant.
	Text() string
	isValue()
}

// Plain is an ordinary string value.
type Plain string

// Plural holds singular and plural forms.
type Plural struct {
	One   string
	Other string
}

// Gender holds male, female and neutral forms.
type Gender struct {
	Male   string
	Female string
	Other  string
}

// Invalid carries a JSON value that is neither a string nor a known
// variant object (numbers, null, arbitrary objects). It is written back
// unchanged.
type Invalid struct {
	Raw json.RawMessage
}

func (v Plain) Text() string   { return string(v) }
func (v Plural) Text() string  { return v.Other }
func (v Gender) Text() string  { return v.Other }
func (v Invalid) Text() string { return "" }

func (Plain) isValue()   {}
func (Plural) isValue()  {}
func (Gender) isValue()  {}
func (Invalid) isValue() {}

// IsUsable reports whether v holds real content. Invalid values and empty
// plain strings are not usable and may be replaced on merge.
func IsUsable(v Value) bool {
	switch v := v.(type) {
	case Plain:
		return v != ""
	case Plural, Gender:
		return true
	}
	return false
}

// Canonical returns a comparison key for v: two values with the same
// canonical form are the same text. Invalid values have no canonical form.
func Canonical(v Value) string {
	switch v := v.(type) {
	case Plain:
		return "s\x00" + string(v)
	case Plural:
		return "p\x00" + v.One + "\x00" + v.Other
	case Gender:
		return "g\x00" + v.Male + "\x00" + v.Female + "\x00" + v.Other
	}
	return ""
}

// decodeValue maps a raw JSON value onto the Value union.
func decodeValue(raw json.RawMessage) Value {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Plain(s)
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		switch {
		case len(obj) == 2 && has(obj, "one", "other"):
			return Plural{One: obj["one"], Other: obj["other"]}
		case len(obj) == 3 && has(obj, "male", "female", "other"):
			return Gender{Male: obj["male"], Female: obj["female"], Other: obj["other"]}
		}
	}
	return Invalid{Raw: append(json.RawMessage(nil), raw...)}
}

func has(m map[string]string, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// writeValue encodes v at the second indentation level of the file.
func writeValue(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Plain:
		buf.Write(encodeString(string(v)))
	case Plural:
		writeObject(buf, "one", v.One, "other", v.Other)
	case Gender:
		writeObject(buf, "male", v.Male, "female", v.Female, "other", v.Other)
	case Invalid:
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, v.Raw, "  ", "  "); err != nil {
			return err
		}
		buf.Write(pretty.Bytes())
	default:
		buf.WriteString(`""`)
	}
	return nil
}

// writeObject writes key/value string pairs as an indented object.
func writeObject(buf *bytes.Buffer, pairs ...string) {
	buf.WriteString("{\n")
	for i := 0; i < len(pairs); i += 2 {
		buf.WriteString("    ")
		buf.Write(encodeString(pairs[i]))
		buf.WriteString(": ")
		buf.Write(encodeString(pairs[i+1]))
		if i+2 < len(pairs) {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("  }")
}

// encodeString JSON-encodes s without HTML escaping, so markup in UI text
// stays readable in the resource file.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}
