package sidebar

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token names with special meaning. Every other token becomes a CSS custom
// property on the sidebar root.
const (
	classItemActive   = "sidebar.item.active"
	classItemInactive = "sidebar.item.inactive"
	classTooltip      = "sidebar.tooltip"
)

// Theme is a resolved theme selection: the merged tokens of a manifest and
// one of its variants.
type Theme struct {
	Name    string
	Variant string
	Tokens  map[string]string
}

// ThemeFromSelection merges base and variant tokens of a go-theme selection.
func ThemeFromSelection(selection *theme.Selection) Theme {
	if selection == nil || selection.Manifest == nil {
		return Theme{}
	}
	out := Theme{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  make(map[string]string, len(selection.Manifest.Tokens)),
	}
	for key, value := range selection.Manifest.Tokens {
		out.Tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out.Tokens[key] = value
		}
	}
	return out
}

// CSSVars returns the non-class tokens as CSS custom properties.
func (t Theme) CSSVars() map[string]string {
	if len(t.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		if isClassToken(key) {
			continue
		}
		name := "--" + strings.NewReplacer(".", "-", "_", "-").Replace(key)
		vars[name] = value
	}
	return vars
}

// Style renders CSSVars as an inline style attribute value, sorted for
// deterministic output.
func (t Theme) Style() string {
	vars := t.CSSVars()
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, vars[name]))
	}
	return strings.Join(parts, "; ")
}

func isClassToken(key string) bool {
	switch key {
	case classItemActive, classItemInactive, classTooltip:
		return true
	default:
		return false
	}
}

func (t Theme) class(token, fallback string) string {
	if value := strings.TrimSpace(t.Tokens[token]); value != "" {
		return value
	}
	return fallback
}

// Selector resolves themes from a fixed set of manifests. It satisfies
// theme.ThemeSelector so it can stand in wherever a go-theme selector is
// accepted.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector indexes manifests by name. defaultTheme and defaultVariant are
// used when Select receives empty arguments.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *Selector {
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select returns the named manifest and variant. An unknown variant is an
// error; an empty one selects the default.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.defaultTheme
	}
	if variant == "" {
		variant = s.defaultVariant
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("sidebar: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("sidebar: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// DefaultManifest is the built-in admin theme with a light and a dark
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "senate",
		Version: "1.0.0",
		Tokens: map[string]string{
			"sidebar.bg":     "#ffffff",
			"sidebar.border": "#e5e7eb",
			"brand":          "#991b1b",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"sidebar.bg":      "#111827",
					"sidebar.border":  "#374151",
					classItemInactive: "hover:bg-gray-800 text-gray-300",
				},
			},
		},
	}
}
