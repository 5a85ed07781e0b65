package validation

import "slices"

// Issue is a single field failure, kept in schema order for serialisation.
type Issue struct {
	Field   string   `json:"field"`
	Rule    RuleKind `json:"rule"`
	Message string   `json:"message"`
}

// Result maps field names to error messages. A field with no entry is valid.
type Result struct {
	Errors map[string]string `json:"errors,omitempty"`
	Issues []Issue           `json:"issues,omitempty"`
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns the message for field, or "".
func (r Result) Error(field string) string {
	return r.Errors[field]
}

// Fields returns the names of failing fields, sorted.
func (r Result) Fields() []string {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Messages returns the errors as single-element slices, the shape render
// options and error payloads use.
func (r Result) Messages() map[string][]string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Errors))
	for name, message := range r.Errors {
		out[name] = []string{message}
	}
	return out
}

func (r *Result) add(field string, kind RuleKind, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[field] = message
	r.Issues = append(r.Issues, Issue{Field: field, Rule: kind, Message: message})
}
