// Package adminshell is the top-level entry point: it renders admin pages and
// loads forms without importing the individual packages.
package adminshell

import (
	"context"
	"fmt"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/renderers/vanilla"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
)

// Page aliases render.Page.
type Page = render.Page

// Submission aliases forms.Submission for completion handlers.
type Submission = forms.Submission

// Handler aliases forms.Handler.
type Handler = forms.Handler

// UserError is returned by completion handlers to show a form-level message.
type UserError = render.UserError

// RenderHTML renders page with the built-in HTML renderer. It is the simplest
// entry point for callers that just want markup.
func RenderHTML(ctx context.Context, page Page, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("adminshell: %w", err)
	}
	return renderer.Render(ctx, page)
}

// Dashboard returns the dashboard page for the given sidebar state.
func Dashboard(expanded bool, options ...sidebar.Option) Page {
	opts := append([]sidebar.Option{sidebar.WithExpanded(expanded)}, options...)
	view := sidebar.NewController(opts...).View()
	return Page{
		Kind:    render.PageDashboard,
		Title:   "Dashboard",
		Sidebar: &view,
		Hidden:  []render.HiddenField{render.SidebarState(view.Expanded)},
	}
}
