package vanilla

import (
	"slices"
	"strings"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
)

// pageView is the template context. The template engine flattens it through
// JSON, so every value a template reads is precomputed here.
type pageView struct {
	Kind       string               `json:"kind"`
	Title      string               `json:"title"`
	Stylesheet string               `json:"stylesheet"`
	Sidebar    *sidebar.View        `json:"sidebar,omitempty"`
	Toggle     []render.HiddenField `json:"toggle,omitempty"`
	Form       *formView            `json:"form,omitempty"`
	Submitted  bool                 `json:"submitted"`
	RequestID  string               `json:"requestId,omitempty"`
	Classes    map[string]string    `json:"classes"`
}

type formView struct {
	ID          string               `json:"id"`
	Action      string               `json:"action"`
	Method      string               `json:"method"`
	Enctype     string               `json:"enctype,omitempty"`
	Title       string               `json:"title,omitempty"`
	Subtitle    string               `json:"subtitle,omitempty"`
	SubmitLabel string               `json:"submitLabel"`
	Hidden      []render.HiddenField `json:"hidden,omitempty"`
	Errors      []string             `json:"errors,omitempty"`
	Fields      []fieldView          `json:"fields"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Input       string       `json:"input"`
	Required    bool         `json:"required"`
	Placeholder string       `json:"placeholder,omitempty"`
	Accept      string       `json:"accept,omitempty"`
	Value       string       `json:"value,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Error       string       `json:"error,omitempty"`
	Class       string       `json:"class"`
	Group       bool         `json:"group"`
}

type optionView struct {
	ID      string `json:"id"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

func buildPageView(page render.Page, stylesheet string) pageView {
	view := pageView{
		Kind:       string(page.Kind),
		Title:      page.Title,
		Stylesheet: stylesheet,
		Sidebar:    page.Sidebar,
		Submitted:  page.Submitted,
		RequestID:  page.RequestID,
		Classes: map[string]string{
			"shell":   string(ClassShell),
			"sidebar": string(ClassSidebar),
			"main":    string(ClassMain),
			"form":    string(ClassForm),
			"field":   string(ClassField),
			"errors":  string(ClassErrors),
			"actions": string(ClassActions),
			"notice":  string(ClassNotice),
			"submit":  submitClass,
			"error":   errorTextClass,
		},
	}
	if page.Sidebar != nil {
		view.Toggle = toggleFields(page.Hidden)
	}
	if page.Form != nil {
		view.Form = buildFormView(page)
		if view.Title == "" {
			view.Title = page.Form.Title
		}
	}
	return view
}

// toggleFields carries every hidden field except the sidebar flag, which
// the toggle form writes itself.
func toggleFields(hidden []render.HiddenField) []render.HiddenField {
	out := make([]render.HiddenField, 0, len(hidden))
	for _, field := range hidden {
		if field.Name != render.ExpandedField {
			out = append(out, field)
		}
	}
	return out
}

func buildFormView(page render.Page) *formView {
	form := page.Form
	view := &formView{
		ID:          form.ID,
		Action:      form.Endpoint,
		Method:      strings.ToLower(firstNonEmpty(form.Method, "post")),
		Title:       form.Title,
		Subtitle:    form.Subtitle,
		SubmitLabel: firstNonEmpty(form.SubmitLabel, "Submit"),
		Hidden:      page.Hidden,
		Errors:      page.Errors.Form,
	}
	if form.Multipart() {
		view.Enctype = "multipart/form-data"
	}
	for _, field := range form.Fields {
		view.Fields = append(view.Fields, buildFieldView(field, page))
	}
	return view
}

func buildFieldView(field model.Field, page render.Page) fieldView {
	value := page.Values[field.Name]
	view := fieldView{
		ID:          controlID(field.Name),
		Name:        field.Name,
		Label:       firstNonEmpty(field.Label, model.Label(field.Name)),
		Input:       string(field.Input),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Accept:      field.Accept,
		Error:       page.Errors.Field(field.Name),
		Class:       inputClass,
		Group:       field.Input == model.InputRadio || field.Input == model.InputCheckbox,
	}
	if view.Input == "" {
		view.Input = string(model.InputText)
	}
	if view.Error != "" {
		view.Class = inputInvalidClass
	}
	// Passwords and files are never echoed back.
	switch field.Input {
	case model.InputPassword, model.InputFile:
	default:
		view.Value = value.Text()
	}

	selected := value.List()
	if text := value.Text(); text != "" {
		selected = append(selected, text)
	}
	for _, option := range field.Options {
		view.Options = append(view.Options, optionView{
			ID:      controlID(field.Name + "-" + option.Value),
			Value:   option.Value,
			Label:   firstNonEmpty(option.Label, option.Value),
			Checked: slices.Contains(selected, option.Value),
		})
	}
	return view
}

func controlID(name string) string {
	replacer := strings.NewReplacer(" ", "-", ".", "-", "/", "-")
	return "as-" + strings.ToLower(replacer.Replace(strings.TrimSpace(name)))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
