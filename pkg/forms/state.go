package forms

import (
	"context"

	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// State holds the current input of one form instance. It is owned by a
// single caller (a request or a terminal session) and is not safe for
// concurrent use.
type State struct {
	form   *Form
	values validation.Values
	errors map[string]string
}

// NewState starts an empty state for the form.
func (f *Form) NewState() *State {
	return &State{
		form:   f,
		values: make(validation.Values),
		errors: make(map[string]string),
	}
}

// SetText records a text input change.
func (s *State) SetText(name, value string) {
	s.set(name, validation.Text(value))
}

// SetSelected records the selected values of a multi-select group.
func (s *State) SetSelected(name string, values ...string) {
	s.set(name, validation.List(values...))
}

// SetFile injects a file selection. File inputs do not produce a change
// stream, so callers push the chosen file here when the selection changes;
// nil clears it.
func (s *State) SetFile(name string, file *validation.File) {
	s.set(name, validation.FileValue(file))
}

// Blur marks a field as having lost focus, validating it when the form mode
// asks for it.
func (s *State) Blur(name string) {
	if s.form.mode.OnBlur() {
		s.validateField(name)
	}
}

// Values returns a copy of the current values.
func (s *State) Values() validation.Values {
	return s.values.Clone()
}

// Errors returns a copy of the current field errors.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submit validates and submits the current values. Field errors are replaced
// wholesale by the outcome so no stale message survives a pass.
func (s *State) Submit(ctx context.Context) (validation.Result, error) {
	result, err := s.form.Submit(ctx, s.values)
	s.errors = make(map[string]string, len(result.Errors))
	for name, message := range result.Errors {
		s.errors[name] = message
	}
	return result, err
}

func (s *State) set(name string, value validation.Value) {
	s.values[name] = value
	if s.form.mode.OnChange() {
		s.validateField(name)
	}
}

func (s *State) validateField(name string) {
	if message, ok := validation.ValidateField(s.form.schema, name, s.values[name]); ok {
		delete(s.errors, name)
	} else {
		s.errors[name] = message
	}
}
