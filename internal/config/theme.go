package config

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-admin-shell/pkg/sidebar"
)

type manifestFile struct {
	Themes []manifestEntry `yaml:"themes"`
}

type manifestEntry struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// LoadManifests reads a theme manifest file. Each variant maps to its token
// overrides.
func LoadManifests(path string) ([]*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read theme manifest %s: %w", path, err)
	}
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: decode theme manifest %s: %w", path, err)
	}
	out := make([]*theme.Manifest, 0, len(file.Themes))
	for _, entry := range file.Themes {
		if entry.Name == "" {
			return nil, fmt.Errorf("config: theme manifest %s: theme without name", path)
		}
		manifest := &theme.Manifest{
			Name:     entry.Name,
			Version:  entry.Version,
			Tokens:   entry.Tokens,
			Variants: make(map[string]theme.Variant, len(entry.Variants)),
		}
		for name, tokens := range entry.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: tokens}
		}
		out = append(out, manifest)
	}
	return out, nil
}

// ResolveTheme selects the configured theme from the built-in manifest and
// any manifests named by Theme.Manifest.
func (c Config) ResolveTheme() (sidebar.Theme, error) {
	manifests := []*theme.Manifest{sidebar.DefaultManifest()}
	if c.Theme.Manifest != "" {
		extra, err := LoadManifests(c.Theme.Manifest)
		if err != nil {
			return sidebar.Theme{}, err
		}
		manifests = append(manifests, extra...)
	}
	selector := sidebar.NewSelector(c.Theme.Name, c.Theme.Variant, manifests...)
	selection, err := selector.Select("", "")
	if err != nil {
		return sidebar.Theme{}, fmt.Errorf("config: theme: %w", err)
	}
	return sidebar.ThemeFromSelection(selection), nil
}
