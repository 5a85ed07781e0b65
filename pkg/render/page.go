package render

import (
	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// PageKind selects the layout a renderer produces.
type PageKind string

const (
	PageDashboard PageKind = "dashboard"
	PageForm      PageKind = "form"
	PageLogin     PageKind = "login"
	// PageSidebar renders only the sidebar fragment.
	PageSidebar PageKind = "sidebar"
)

// Page is everything a renderer needs for one response. Renderers must not
// mutate it.
type Page struct {
	Kind    PageKind
	Title   string
	Sidebar *sidebar.View
	Form    *model.FormModel
	// Values echoes the submitted input back into the controls.
	Values validation.Values
	Errors ErrorMapping
	Hidden []HiddenField
	// Submitted is set after a valid submission was handed to the completion
	// handler.
	Submitted bool
	// Data carries the accepted submission for API clients.
	Data      map[string]any
	RequestID string
}

// Valid reports whether the page carries no validation feedback.
func (p Page) Valid() bool {
	return len(p.Errors.Fields) == 0 && len(p.Errors.Form) == 0
}
