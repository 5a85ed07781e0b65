package validation

import (
	"slices"
	"strconv"
	"strings"
)

// File references a selected upload. Only the metadata the rules need is
// carried; the content stays with the caller.
type File struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"contentType" yaml:"contentType"`
	Size        int64  `json:"size" yaml:"size"`
}

type valueKind uint8

const (
	kindNone valueKind = iota
	kindText
	kindFile
	kindList
)

// Value is the current input of one field: a text string, a single file
// reference or a set of selected strings. The zero Value is "absent".
type Value struct {
	kind valueKind
	text string
	file *File
	list []string
}

// Text wraps a text input value.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// FileValue wraps a file selection. A nil file is an absent value.
func FileValue(f *File) Value {
	if f == nil {
		return Value{}
	}
	copied := *f
	return Value{kind: kindFile, file: &copied}
}

// List wraps the selected values of a multi-select field.
func List(values ...string) Value {
	return Value{kind: kindList, list: append([]string{}, values...)}
}

// Text returns the text content, or "" for non-text values.
func (v Value) Text() string {
	return v.text
}

// File returns the file reference, or nil.
func (v Value) File() *File {
	return v.file
}

// List returns a copy of the selected values.
func (v Value) List() []string {
	if len(v.list) == 0 {
		return nil
	}
	return append([]string(nil), v.list...)
}

// IsEmpty reports whether the value is absent, blank text, an empty
// selection or a missing file.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case kindText:
		return v.text == ""
	case kindFile:
		return v.file == nil
	case kindList:
		return len(v.list) == 0
	default:
		return true
	}
}

// Interface returns the value as a plain Go value for serialisation: string,
// *File, []string or nil.
func (v Value) Interface() any {
	switch v.kind {
	case kindText:
		return v.text
	case kindFile:
		copied := *v.file
		return &copied
	case kindList:
		return v.List()
	default:
		return nil
	}
}

// Values maps field names to their current input.
type Values map[string]Value

// Clone returns a shallow copy of the map.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Data converts the values into a plain map keyed by field name.
func (v Values) Data() map[string]any {
	out := make(map[string]any, len(v))
	for key, value := range v {
		out[key] = value.Interface()
	}
	return out
}

// ValueFromAny converts decoded JSON/YAML input into a Value. Strings,
// numbers and booleans become text, slices become lists, and maps become
// file references.
func ValueFromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Value{}
	case string:
		return Text(typed)
	case []string:
		return List(typed...)
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := scalarText(item); ok {
				items = append(items, s)
			}
		}
		return List(items...)
	case *File:
		return FileValue(typed)
	case File:
		return FileValue(&typed)
	case map[string]any:
		file := &File{}
		if name, ok := typed["name"].(string); ok {
			file.Name = name
		}
		if ct, ok := typed["contentType"].(string); ok {
			file.ContentType = strings.TrimSpace(ct)
		}
		switch size := typed["size"].(type) {
		case int:
			file.Size = int64(size)
		case int64:
			file.Size = size
		case float64:
			file.Size = int64(size)
		}
		return FileValue(file)
	default:
		if text, ok := scalarText(raw); ok {
			return Text(text)
		}
		return Value{}
	}
}

// scalarText formats strings, numbers and booleans the way they were typed.
// Floats never use an exponent so 1234567890 decoded from JSON stays digits.
func scalarText(raw any) (string, bool) {
	switch typed := raw.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case uint:
		return strconv.FormatUint(uint64(typed), 10), true
	case uint64:
		return strconv.FormatUint(typed, 10), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.text != other.text {
		return false
	}
	if (v.file == nil) != (other.file == nil) {
		return false
	}
	if v.file != nil && *v.file != *other.file {
		return false
	}
	return slices.Equal(v.list, other.list)
}
