package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FieldType is the input kind a field schema describes.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeEnum     FieldType = "enum"
	FieldTypeArray    FieldType = "array"
	FieldTypeFile     FieldType = "file"
)

// FieldSchema declares the rules for one named field. Optional fields with an
// empty value skip their rules entirely.
type FieldSchema struct {
	Name     string
	Type     FieldType
	Optional bool
	Rules    []Rule
}

var (
	ErrEmptyFieldName = errors.New("validation: field name is required")
	ErrDuplicateField = errors.New("validation: duplicate field name")
)

// Schema is an immutable, ordered set of field schemas. Construct it with
// NewSchema; accessors hand out copies so callers cannot mutate it.
type Schema struct {
	fields []FieldSchema
	index  map[string]int
}

// NewSchema validates and freezes the supplied field schemas. Pattern rules
// built as struct literals are compiled here so a bad expression surfaces at
// definition time.
func NewSchema(fields ...FieldSchema) (*Schema, error) {
	schema := &Schema{
		fields: make([]FieldSchema, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := schema.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		if field.Type == "" {
			field.Type = FieldTypeText
		}

		rules := make([]Rule, 0, len(field.Rules))
		for _, rule := range field.Rules {
			if rule == nil {
				continue
			}
			if pattern, ok := rule.(Pattern); ok && pattern.re == nil {
				compiled, err := NewPattern(pattern.Expr, pattern.Message)
				if err != nil {
					return nil, fmt.Errorf("validation: field %q: %w", name, err)
				}
				rule = compiled
			}
			rules = append(rules, cloneRule(rule))
		}

		schema.index[name] = len(schema.fields)
		schema.fields = append(schema.fields, FieldSchema{
			Name:     name,
			Type:     field.Type,
			Optional: field.Optional,
			Rules:    rules,
		})
	}
	return schema, nil
}

// MustSchema panics when NewSchema fails. Useful for package-level form
// definitions.
func MustSchema(fields ...FieldSchema) *Schema {
	schema, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return schema
}

// Fields returns a copy of the field schemas in declaration order.
func (s *Schema) Fields() []FieldSchema {
	if s == nil {
		return nil
	}
	out := make([]FieldSchema, len(s.fields))
	for i, field := range s.fields {
		out[i] = copyField(field)
	}
	return out
}

// Field looks up a field schema by name.
func (s *Schema) Field(name string) (FieldSchema, bool) {
	if s == nil {
		return FieldSchema{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return FieldSchema{}, false
	}
	return copyField(s.fields[idx]), true
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name
	}
	return names
}

// Len reports the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Check reports input keys with no schema entry. Every input bound to a form
// must be described by the schema, so a non-empty return is a wiring bug in
// the caller.
func (s *Schema) Check(values Values) []string {
	var unknown []string
	for name := range values {
		if s == nil {
			unknown = append(unknown, name)
			continue
		}
		if _, ok := s.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func copyField(field FieldSchema) FieldSchema {
	out := field
	out.Rules = make([]Rule, len(field.Rules))
	for i, rule := range field.Rules {
		out.Rules[i] = cloneRule(rule)
	}
	return out
}

func cloneRule(rule Rule) Rule {
	switch typed := rule.(type) {
	case OneOf:
		typed.Values = slices.Clone(typed.Values)
		return typed
	case Subset:
		typed.Options = slices.Clone(typed.Options)
		return typed
	default:
		return rule
	}
}
