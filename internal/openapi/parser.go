package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

const (
	extensionTitle       = "x-formgen-title"
	extensionSubtitle    = "x-formgen-subtitle"
	extensionSubmitLabel = "x-formgen-submit-label"
	extensionOrder       = "x-formgen-order"
	extensionLabel       = "x-formgen-label"
	extensionPlaceholder = "x-formgen-placeholder"
	extensionMessages    = "x-formgen-messages"
	extensionAccept      = "x-formgen-accept"
	extensionMaxBytes    = "x-formgen-max-bytes"
	extensionInput       = "x-formgen-input"
)

// Definition is one form extracted from a document.
type Definition struct {
	Model  model.FormModel
	Schema *validation.Schema
}

// Options tune parsing.
type Options struct {
	// Strict runs kin-openapi document validation before conversion.
	Strict bool
	// Labeler derives labels for properties without x-formgen-label.
	Labeler func(string) string
}

// Parse converts every POST operation of raw into a Definition, sorted by
// form id.
func Parse(ctx context.Context, raw []byte, opts Options) ([]Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi forms: document payload is empty")
	}
	if opts.Labeler == nil {
		opts.Labeler = model.Label
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi forms: load document: %w", err)
	}
	if opts.Strict {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi forms: validate: %w", err)
		}
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi forms: document does not contain any paths")
	}

	var defs []Definition
	for path, item := range doc.Paths.Map() {
		if item == nil || item.Post == nil {
			continue
		}
		def, ok, err := convertOperation(path, item.Post, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return nil, errors.New("openapi forms: no form operations found")
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Model.ID < defs[j].Model.ID })
	return defs, nil
}

func convertOperation(path string, op *openapi3.Operation, opts Options) (Definition, bool, error) {
	body := requestSchema(op.RequestBody)
	if body == nil || !hasType(body, "object") {
		return Definition{}, false, nil
	}

	id := strings.TrimSpace(op.OperationID)
	if id == "" {
		id = "post:" + path
	}

	form := model.FormModel{
		ID:          id,
		Endpoint:    path,
		Method:      "POST",
		Title:       firstNonEmpty(stringExtension(op.Extensions, extensionTitle), op.Summary),
		Subtitle:    firstNonEmpty(stringExtension(op.Extensions, extensionSubtitle), op.Description),
		SubmitLabel: firstNonEmpty(stringExtension(op.Extensions, extensionSubmitLabel), "Submit"),
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	var fields []validation.FieldSchema
	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, schema, err := convertProperty(name, ref.Value, required[name], opts)
		if err != nil {
			return Definition{}, false, fmt.Errorf("openapi forms: operation %q property %q: %w", id, name, err)
		}
		form.Fields = append(form.Fields, field)
		fields = append(fields, schema)
	}

	schema, err := validation.NewSchema(fields...)
	if err != nil {
		return Definition{}, false, fmt.Errorf("openapi forms: operation %q: %w", id, err)
	}
	return Definition{Model: form, Schema: schema}, true, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"multipart/form-data", "application/x-www-form-urlencoded", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var order []string
	for _, name := range stringsExtension(schema.Extensions, extensionOrder) {
		if _, ok := schema.Properties[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	var rest []string
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func convertProperty(name string, src *openapi3.Schema, required bool, opts Options) (model.Field, validation.FieldSchema, error) {
	messages := messagesExtension(src.Extensions)
	field := model.Field{
		Name:        name,
		Label:       firstNonEmpty(stringExtension(src.Extensions, extensionLabel), src.Title, opts.Labeler(name)),
		Placeholder: stringExtension(src.Extensions, extensionPlaceholder),
		Required:    required,
	}
	schema := validation.FieldSchema{Name: name, Optional: !required}

	switch {
	case hasType(src, "array"):
		field.Input = model.InputCheckbox
		schema.Type = validation.FieldTypeArray
		min := int(src.MinItems)
		if required && min == 0 {
			min = 1
		}
		if min > 0 {
			schema.Rules = append(schema.Rules, validation.MinItems{Min: min, Message: messages["minItems"]})
		}
		if src.Items != nil && src.Items.Value != nil && len(src.Items.Value.Enum) > 0 {
			options := enumStrings(src.Items.Value.Enum)
			field.Options = toOptions(options)
			schema.Rules = append(schema.Rules, validation.Subset{Options: options, Message: messages["subset"]})
		}
		// An empty list satisfies MinItems(0); arrays are never skipped as
		// optional so MinItems always runs.
		schema.Optional = false

	case src.Format == "binary":
		field.Input = model.InputFile
		schema.Type = validation.FieldTypeFile
		accept := stringExtension(src.Extensions, extensionAccept)
		field.Accept = accept
		if required {
			schema.Rules = append(schema.Rules, validation.Required{Message: messages["required"]})
		}
		maxBytes, err := int64Extension(src.Extensions, extensionMaxBytes)
		if err != nil {
			return model.Field{}, validation.FieldSchema{}, err
		}
		if prefix := strings.TrimSuffix(accept, "*"); prefix != "" || maxBytes > 0 {
			schema.Rules = append(schema.Rules, validation.FileConstraint{
				MIMEPrefix:  prefix,
				MaxBytes:    maxBytes,
				TypeMessage: messages["type"],
				SizeMessage: messages["size"],
			})
		}

	case len(src.Enum) > 0:
		field.Input = model.InputRadio
		schema.Type = validation.FieldTypeEnum
		options := enumStrings(src.Enum)
		field.Options = toOptions(options)
		if required {
			schema.Rules = append(schema.Rules, validation.Required{Message: firstNonEmpty(messages["required"], messages["enum"])})
		}
		schema.Rules = append(schema.Rules, validation.OneOf{Values: options, Message: messages["enum"]})

	default:
		field.Input = model.InputText
		schema.Type = validation.FieldTypeText
		switch src.Format {
		case "email":
			field.Input = model.InputEmail
			schema.Type = validation.FieldTypeEmail
		case "password":
			field.Input = model.InputPassword
			schema.Type = validation.FieldTypePassword
		}
		if required && src.MinLength == 0 {
			schema.Rules = append(schema.Rules, validation.Required{Message: messages["required"]})
		}
		if length, ok := lengthRule(src, messages); ok {
			schema.Rules = append(schema.Rules, length)
		}
		if src.Pattern != "" {
			pattern, err := validation.NewPattern(src.Pattern, messages["pattern"])
			if err != nil {
				return model.Field{}, validation.FieldSchema{}, err
			}
			schema.Rules = append(schema.Rules, pattern)
		}
		if src.Format == "email" {
			schema.Rules = append(schema.Rules, validation.Email{Message: messages["email"]})
		}
	}

	if input := stringExtension(src.Extensions, extensionInput); input != "" {
		field.Input = model.InputType(input)
	}
	return field, schema, nil
}

func lengthRule(src *openapi3.Schema, messages map[string]string) (validation.Length, bool) {
	rule := validation.Length{
		Min:        int(src.MinLength),
		MinMessage: messages["minLength"],
		MaxMessage: messages["maxLength"],
	}
	if src.MaxLength != nil {
		rule.Max = int(*src.MaxLength)
	}
	return rule, rule.Min > 0 || rule.Max > 0
}

func hasType(schema *openapi3.Schema, want string) bool {
	if schema == nil || schema.Type == nil {
		return false
	}
	for _, typ := range schema.Type.Slice() {
		if typ == want {
			return true
		}
	}
	return false
}

func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func toOptions(values []string) []model.Option {
	out := make([]model.Option, 0, len(values))
	for _, value := range values {
		out = append(out, model.Option{Value: value, Label: value})
	}
	return out
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func stringsExtension(ext map[string]any, key string) []string {
	raw, ok := ext[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func messagesExtension(ext map[string]any) map[string]string {
	raw, ok := ext[extensionMessages].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}
	return out
}

func int64Extension(ext map[string]any, key string) (int64, error) {
	switch value := ext[key].(type) {
	case nil:
		return 0, nil
	case float64:
		if value < 0 || value != math.Trunc(value) {
			return 0, fmt.Errorf("%s must be a non-negative integer", key)
		}
		return int64(value), nil
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
