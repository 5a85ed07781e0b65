package sidebar

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Icon is a stable reference to a graphic: either an image source path or
// inline SVG markup. Inline markup is sanitised before it reaches a page.
type Icon struct {
	Src    string `json:"src,omitempty" yaml:"src"`
	Alt    string `json:"alt,omitempty" yaml:"alt"`
	Width  int    `json:"width,omitempty" yaml:"width"`
	Height int    `json:"height,omitempty" yaml:"height"`
	SVG    string `json:"svg,omitempty" yaml:"svg"`
}

// IconView is the render-ready icon. SVG holds sanitised markup.
type IconView struct {
	Src    string `json:"src,omitempty"`
	Alt    string `json:"alt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	SVG    string `json:"svg,omitempty"`
}

// View normalises the icon for rendering. Backslash separated paths are
// rewritten to URL form and missing dimensions default to 24px.
func (i Icon) View() IconView {
	view := IconView{
		Src:    strings.ReplaceAll(strings.TrimSpace(i.Src), `\`, "/"),
		Alt:    strings.TrimSpace(i.Alt),
		Width:  i.Width,
		Height: i.Height,
		SVG:    SanitizeSVG(i.SVG),
	}
	if view.Width <= 0 {
		view.Width = 24
	}
	if view.Height <= 0 {
		view.Height = view.Width
	}
	return view
}

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// SanitizeSVG strips scripts, event handlers and any element outside the
// drawing subset of SVG.
func SanitizeSVG(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgSanitizer().Sanitize(trimmed))
}

func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use", "clipPath",
		)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")
		policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use")
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "fill", "stroke", "stroke-width",
			"stroke-linecap", "stroke-linejoin", "class",
		).OnElements("path", "circle", "rect", "line", "polyline", "polygon", "ellipse")
		policy.AllowAttrs("id", "clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("id").OnElements("defs", "g")
		svgPolicy = policy
	})
	return svgPolicy
}
