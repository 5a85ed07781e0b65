package model

// InputType is the HTML control a field renders as.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
	InputRadio    InputType = "radio"
	InputCheckbox InputType = "checkbox"
	InputFile     InputType = "file"
)

// Option is a selectable choice for radio and checkbox groups.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input inside a form.
type Field struct {
	Name        string    `json:"name"`
	Input       InputType `json:"input"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
	// Accept mirrors the HTML accept attribute for file inputs.
	Accept string            `json:"accept,omitempty"`
	Hints  map[string]string `json:"hints,omitempty"`
}

// Multiple reports whether the field submits a set of values.
func (f Field) Multiple() bool {
	return f.Input == InputCheckbox
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Subtitle    string            `json:"subtitle,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Multipart reports whether the form carries a file input and must be
// submitted as multipart/form-data.
func (f FormModel) Multipart() bool {
	for _, field := range f.Fields {
		if field.Input == InputFile {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so decorators can work on their own instance.
func (f FormModel) Clone() FormModel {
	out := f
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		copied := field
		copied.Options = append([]Option(nil), field.Options...)
		copied.Hints = cloneStrings(field.Hints)
		out.Fields[i] = copied
	}
	out.Metadata = cloneStrings(f.Metadata)
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
