package validation

// Mode selects when per-field validation runs in addition to submit.
type Mode string

const (
	ModeSubmit Mode = "submit"
	ModeChange Mode = "change"
	ModeBlur   Mode = "blur"
	ModeAll    Mode = "all"
)

// ParseMode maps a configuration string onto a Mode, defaulting to submit.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeChange, ModeBlur, ModeAll:
		return Mode(raw)
	default:
		return ModeSubmit
	}
}

// OnChange reports whether fields are validated as their value changes.
func (m Mode) OnChange() bool { return m == ModeChange || m == ModeAll }

// OnBlur reports whether fields are validated when they lose focus.
func (m Mode) OnBlur() bool { return m == ModeBlur || m == ModeAll }

// Validate evaluates every field of schema against values and returns the
// full result. Fields are independent: a failure never stops evaluation of
// the remaining fields, and the first failing rule of a field supplies its
// message.
func Validate(schema *Schema, values Values) Result {
	var result Result
	if schema == nil {
		return result
	}
	for _, field := range schema.fields {
		if kind, message, ok := evaluate(field, values[field.Name]); !ok {
			result.add(field.Name, kind, message)
		}
	}
	return result
}

// ValidateField evaluates a single field. Unknown names are reported as
// valid so callers can validate partially bound forms.
func ValidateField(schema *Schema, name string, value Value) (string, bool) {
	if schema == nil {
		return "", true
	}
	idx, ok := schema.index[name]
	if !ok {
		return "", true
	}
	_, message, valid := evaluate(schema.fields[idx], value)
	return message, valid
}

func evaluate(field FieldSchema, value Value) (RuleKind, string, bool) {
	if field.Optional && value.IsEmpty() {
		return "", "", true
	}
	for _, rule := range field.Rules {
		if message, ok := rule.check(value); !ok {
			return rule.Kind(), message, false
		}
	}
	return "", "", true
}
