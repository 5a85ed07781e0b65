package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-admin-shell/pkg/render"
	rendertemplate "github.com/goliatone/go-admin-shell/pkg/render/template"
	"github.com/goliatone/go-admin-shell/pkg/render/template/pongo"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetsPrefix     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetsPrefix sets the URL prefix the stylesheet and icons are served
// under. Defaults to "/assets".
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// Renderer produces HTML pages from the embedded pongo2 templates.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{assetsPrefix: "/assets"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		created, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
			pongo.WithSetName("vanilla"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		engine = created
	}

	return &Renderer{
		templates:  engine,
		stylesheet: cfg.assetsPrefix + "/" + StylesheetName,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the template matching page.Kind.
func (r *Renderer) Render(ctx context.Context, page render.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	name, err := templateFor(page)
	if err != nil {
		return nil, err
	}
	result, err := r.templates.RenderTemplate(name, buildPageView(page, r.stylesheet))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", page.Kind, err)
	}
	return []byte(result), nil
}

func templateFor(page render.Page) (string, error) {
	switch page.Kind {
	case render.PageDashboard:
		if page.Sidebar == nil {
			return "", fmt.Errorf("vanilla renderer: dashboard requires a sidebar")
		}
		return "dashboard", nil
	case render.PageSidebar:
		if page.Sidebar == nil {
			return "", fmt.Errorf("vanilla renderer: sidebar fragment requires a sidebar")
		}
		return "sidebar", nil
	case render.PageForm:
		if page.Form == nil {
			return "", fmt.Errorf("vanilla renderer: form page requires a form")
		}
		return "form", nil
	case render.PageLogin:
		if page.Form == nil {
			return "", fmt.Errorf("vanilla renderer: login page requires a form")
		}
		return "login", nil
	default:
		return "", fmt.Errorf("vanilla renderer: unsupported page kind %q", page.Kind)
	}
}
