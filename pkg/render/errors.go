package render

import (
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// ErrorMapping splits feedback into field-level and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Field returns the first message recorded for name.
func (m ErrorMapping) Field(name string) string {
	if messages := m.Fields[name]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// MapResult converts a validation result into an ErrorMapping. Messages for
// fields the model does not render are promoted to form level so they are
// never lost. Extra errors (for example a failed completion handler) become
// form-level messages.
func MapResult(form model.FormModel, result validation.Result, extras ...error) ErrorMapping {
	payload := result.Messages()
	mapping := MapErrorPayload(form, payload)
	for _, err := range extras {
		if err == nil {
			continue
		}
		mapping.Form = MergeFormErrors(mapping.Form, FormMessage(err))
	}
	return mapping
}

// PublicData returns submitted values safe to echo back: password fields are
// dropped.
func PublicData(form model.FormModel, values validation.Values) map[string]any {
	data := values.Data()
	for _, field := range form.Fields {
		if field.Input == model.InputPassword {
			delete(data, field.Name)
		}
	}
	return data
}

// FormMessage extracts the user-facing part of err. Wrapped errors carrying
// a UserError keep its message; anything else is reported generically.
func FormMessage(err error) string {
	var userErr UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return "Submission could not be processed"
}

// UserError carries a message that is safe to show to the person who
// submitted the form.
type UserError struct {
	Message string
}

func (e UserError) Error() string { return e.Message }

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises error payloads keyed by field path (plain
// names, dotted "body.name" or JSON pointers "/body/name") onto the model's
// field names. Unknown paths are treated as form-level errors.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			known[name] = struct{}{}
		}
	}

	for _, rawPath := range sortedPaths(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		name, ok := resolveField(rawPath, known)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveField(raw string, known map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}
	if _, ok := known[segments[0]]; !ok {
		return "", false
	}
	return segments[0], true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$./")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "values":
			segments = segments[1:]
		default:
			return segments
		}
	}
	return segments
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}

func sortedPaths(payload map[string][]string) []string {
	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
