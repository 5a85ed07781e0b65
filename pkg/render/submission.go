package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hidden input names shared by renderers and the server.
const (
	// ExpandedField round-trips the sidebar state through forms.
	ExpandedField = "expanded"
	// FragmentField asks the toggle endpoint for the sidebar fragment only.
	FragmentField = "fragment"
	// RequestTokenField carries the per-render request token.
	RequestTokenField = "_token"
)

// HiddenField represents a hidden form input emitted alongside the visible
// controls.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// SidebarState encodes the sidebar expanded flag.
func SidebarState(expanded bool) HiddenField {
	return Hidden(ExpandedField, strconv.FormatBool(expanded))
}

// RequestToken encodes an opaque token issued for the rendered page.
func RequestToken(token string) HiddenField {
	return Hidden(RequestTokenField, token)
}

// ParseExpanded decodes a submitted sidebar flag. Missing or malformed
// values fall back to the default expanded state.
func ParseExpanded(raw string) bool {
	expanded, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return true
	}
	return expanded
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}
