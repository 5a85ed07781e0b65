package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-admin-shell/pkg/model"
)

const extensionNamespace = "x-formgen"

// Violation is one unsupported or malformed form extension.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

type extensionKind int

const (
	kindString extensionKind = iota
	kindStringList
	kindMessages
	kindCount
	kindInput
)

var operationExtensions = map[string]extensionKind{
	extensionTitle:       kindString,
	extensionSubtitle:    kindString,
	extensionSubmitLabel: kindString,
}

var schemaExtensions = map[string]extensionKind{
	extensionOrder:       kindStringList,
	extensionLabel:       kindString,
	extensionPlaceholder: kindString,
	extensionMessages:    kindMessages,
	extensionAccept:      kindString,
	extensionMaxBytes:    kindCount,
	extensionInput:       kindInput,
}

var messageKeys = []string{"email", "enum", "maxLength", "minItems", "minLength", "pattern", "required", "size", "subset", "type"}

var inputTypes = []model.InputType{
	model.InputText, model.InputEmail, model.InputPassword,
	model.InputRadio, model.InputCheckbox, model.InputFile,
}

// Lint reports form extensions the parser does not understand or cannot
// decode, sorted by location. Only POST operations are inspected.
func Lint(ctx context.Context, raw []byte) ([]Violation, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi forms: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi forms: load document: %w", err)
	}
	if doc.Paths == nil {
		return nil, nil
	}

	var out []Violation
	for path, item := range doc.Paths.Map() {
		if item == nil || item.Post == nil {
			continue
		}
		op := item.Post
		base := []string{"operation", firstNonEmpty(op.OperationID, "post:"+path)}
		out = append(out, lintExtensions(base, op.Extensions, operationExtensions)...)
		if body := requestSchema(op.RequestBody); body != nil {
			out = append(out, lintSchema(append(base, "requestBody"), body)...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func lintSchema(path []string, schema *openapi3.Schema) []Violation {
	out := lintExtensions(path, schema.Extensions, schemaExtensions)
	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if ref := schema.Properties[key]; ref != nil && ref.Value != nil {
			out = append(out, lintSchema(appendPath(path, "properties."+key), ref.Value)...)
		}
	}
	if schema.Items != nil && schema.Items.Value != nil {
		out = append(out, lintSchema(appendPath(path, "items"), schema.Items.Value)...)
	}
	return out
}

func lintExtensions(path []string, extensions map[string]any, allowed map[string]extensionKind) []Violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if key == extensionNamespace || strings.HasPrefix(key, extensionNamespace+"-") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []Violation
	location := strings.Join(path, " > ")
	for _, key := range keys {
		kind, ok := allowed[key]
		if !ok {
			out = append(out, Violation{
				Location: location,
				Message:  fmt.Sprintf("unsupported extension %q here (supported: %s)", key, strings.Join(sortedNames(allowed), ", ")),
			})
			continue
		}
		if message := checkExtension(key, kind, extensions[key]); message != "" {
			out = append(out, Violation{Location: location, Message: message})
		}
	}
	return out
}

func checkExtension(key string, kind extensionKind, value any) string {
	switch kind {
	case kindString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("%s must be a string (got %T)", key, value)
		}
	case kindStringList:
		items, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("%s must be a list of strings (got %T)", key, value)
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("%s must only contain strings (got %T)", key, item)
			}
		}
	case kindMessages:
		messages, ok := value.(map[string]any)
		if !ok {
			return fmt.Sprintf("%s must be an object (got %T)", key, value)
		}
		for name, message := range messages {
			if !containsString(messageKeys, name) {
				return fmt.Sprintf("%s has unknown key %q (supported: %s)", key, name, strings.Join(messageKeys, ", "))
			}
			if _, ok := message.(string); !ok {
				return fmt.Sprintf("%s.%s must be a string (got %T)", key, name, message)
			}
		}
	case kindCount:
		if _, err := int64Extension(map[string]any{key: value}, key); err != nil {
			return err.Error()
		}
	case kindInput:
		raw, _ := value.(string)
		for _, input := range inputTypes {
			if model.InputType(raw) == input {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of text, email, password, radio, checkbox, file (got %v)", key, value)
	}
	return ""
}

func sortedNames(in map[string]extensionKind) []string {
	out := make([]string, 0, len(in))
	for key := range in {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
