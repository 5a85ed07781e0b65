package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-admin-shell/internal/server"
	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
)

var formats = map[string]string{
	"html": "vanilla",
	"json": "jsonapi",
	"text": "tui",
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		format    string
		output    string
		collapsed bool
	)
	cmd := &cobra.Command{
		Use:       "render <dashboard|sidebar|form|login|FORM_ID>",
		Short:     "Render a page to stdout or a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dashboard", "sidebar", "form", "login"},
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(format)
			if err != nil {
				return err
			}
			page, err := a.page(cmd, args[0], !collapsed)
			if err != nil {
				return err
			}
			body, err := renderer.Render(cmd.Context(), page)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, body, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, json or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "render the sidebar collapsed")
	return cmd
}

func (a *app) renderer(format string) (render.Renderer, error) {
	name, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (html, json, text)", format)
	}
	registry, err := server.DefaultRenderers(a.cfg.Server.AssetsPrefix)
	if err != nil {
		return nil, err
	}
	return registry.Get(name)
}

func (a *app) page(cmd *cobra.Command, target string, expanded bool) (render.Page, error) {
	theme, err := a.cfg.ResolveTheme()
	if err != nil {
		return render.Page{}, err
	}
	ctrl := sidebar.NewController(
		sidebar.WithExpanded(expanded),
		sidebar.WithNav(sidebar.DefaultNav().WithActive("/dashboard")),
		sidebar.WithTheme(theme),
	)
	view := ctrl.View()
	hidden := []render.HiddenField{render.SidebarState(expanded)}

	switch target {
	case "dashboard":
		return render.Page{Kind: render.PageDashboard, Title: "Dashboard", Sidebar: &view, Hidden: hidden}, nil
	case "sidebar":
		return render.Page{Kind: render.PageSidebar, Sidebar: &view, Hidden: hidden}, nil
	}

	registry, err := a.registry(cmd.Context())
	if err != nil {
		return render.Page{}, err
	}
	id := target
	if target == "form" {
		id = forms.GenericFormID
	}
	form, err := registry.Get(id)
	if err != nil {
		return render.Page{}, err
	}
	fm := form.Model()
	if id == forms.LoginFormID {
		return render.Page{Kind: render.PageLogin, Form: &fm}, nil
	}
	return render.Page{Kind: render.PageForm, Form: &fm, Sidebar: &view, Hidden: hidden}, nil
}
