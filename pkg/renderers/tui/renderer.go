package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/render"
)

// Theme captures optional line prefixes.
type Theme struct {
	ItemPrefix   string
	ActivePrefix string
	ErrorPrefix  string
}

// Option configures the text renderer.
type Option func(*Renderer)

// WithTheme applies line prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// Renderer prints pages as plain text for terminals.
type Renderer struct {
	theme Theme
}

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{theme: Theme{ItemPrefix: "  ", ActivePrefix: "> ", ErrorPrefix: "! "}}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the page outline: sidebar entries, form fields with their
// current value and messages.
func (r *Renderer) Render(ctx context.Context, page render.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder

	if title := pageTitle(page); title != "" {
		fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
	}

	if sb := page.Sidebar; sb != nil {
		state := "expanded"
		if !sb.Expanded {
			state = "collapsed"
		}
		fmt.Fprintf(&b, "[sidebar %s]\n", state)
		for _, item := range sb.Items {
			prefix := r.theme.ItemPrefix
			if item.Active {
				prefix = r.theme.ActivePrefix
			}
			line := item.Text
			if item.Alert {
				line += " *"
			}
			if item.Href != "" {
				line += " (" + item.Href + ")"
			}
			fmt.Fprintf(&b, "%s%s\n", prefix, line)
		}
		if sb.Logout.Text != "" {
			fmt.Fprintf(&b, "%s%s (%s)\n", r.theme.ItemPrefix, sb.Logout.Text, sb.Logout.Href)
		}
	}

	if form := page.Form; form != nil {
		if form.Subtitle != "" {
			fmt.Fprintf(&b, "%s\n", form.Subtitle)
		}
		for _, field := range form.Fields {
			label := displayLabel(field)
			value := page.Values[field.Name].Text()
			if list := page.Values[field.Name].List(); len(list) > 0 {
				value = strings.Join(list, ", ")
			}
			if file := page.Values[field.Name].File(); file != nil {
				value = file.Name
			}
			if field.Input == model.InputPassword && value != "" {
				value = strings.Repeat("*", 8)
			}
			fmt.Fprintf(&b, "%s%s: %s\n", r.theme.ItemPrefix, label, value)
			if message := page.Errors.Field(field.Name); message != "" {
				fmt.Fprintf(&b, "%s%s%s\n", r.theme.ItemPrefix, r.theme.ErrorPrefix, message)
			}
		}
		fmt.Fprintf(&b, "[%s]\n", firstNonEmpty(form.SubmitLabel, "Submit"))
	}

	for _, message := range page.Errors.Form {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	if page.Submitted {
		b.WriteString("Submitted successfully\n")
		keys := make([]string, 0, len(page.Data))
		for key := range page.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "%s%s = %v\n", r.theme.ItemPrefix, key, page.Data[key])
		}
	}
	return []byte(b.String()), nil
}

func pageTitle(page render.Page) string {
	if page.Title != "" {
		return page.Title
	}
	if page.Form != nil {
		return page.Form.Title
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
