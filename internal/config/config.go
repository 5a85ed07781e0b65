// Package config loads the admin shell configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// Config is the root document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Forms  FormsConfig  `yaml:"forms"`
	Theme  ThemeConfig  `yaml:"theme"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	AssetsPrefix    string        `yaml:"assets_prefix"`
}

// FormsConfig selects the option lists and extra form documents.
type FormsConfig struct {
	Technologies []string `yaml:"technologies"`
	// Document is an optional OpenAPI file whose POST operations are
	// registered as additional forms.
	Document string `yaml:"document"`
	Mode     string `yaml:"mode"`
}

// ThemeConfig picks a theme variant. Manifest is an optional YAML file with
// extra manifests; the built-in theme is always available.
type ThemeConfig struct {
	Name     string `yaml:"name"`
	Variant  string `yaml:"variant"`
	Manifest string `yaml:"manifest"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  4 * forms.MaxImageBytes,
			AssetsPrefix:    "/assets",
		},
		Forms: FormsConfig{
			Technologies: append([]string(nil), forms.DefaultTechnologies...),
			Mode:         string(validation.ModeSubmit),
		},
		Theme: ThemeConfig{
			Name:    "senate",
			Variant: "light",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.addr %q: %w", c.Server.Addr, err))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	if c.Server.MaxUploadBytes <= forms.MaxImageBytes {
		errs = append(errs, fmt.Errorf("server.max_upload_bytes must exceed the %d byte image limit", forms.MaxImageBytes))
	}
	if prefix := c.Server.AssetsPrefix; prefix != "" && !strings.HasPrefix(prefix, "/") {
		errs = append(errs, fmt.Errorf("server.assets_prefix %q must start with /", prefix))
	}
	switch validation.Mode(c.Forms.Mode) {
	case "", validation.ModeSubmit, validation.ModeChange, validation.ModeBlur, validation.ModeAll:
	default:
		errs = append(errs, fmt.Errorf("forms.mode %q is not one of submit, change, blur, all", c.Forms.Mode))
	}
	seen := make(map[string]struct{}, len(c.Forms.Technologies))
	for _, tech := range c.Forms.Technologies {
		key := strings.TrimSpace(tech)
		if key == "" {
			errs = append(errs, errors.New("forms.technologies contains an empty entry"))
			continue
		}
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("forms.technologies lists %q twice", key))
		}
		seen[key] = struct{}{}
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// ValidationMode returns the parsed forms.mode.
func (c Config) ValidationMode() validation.Mode {
	return validation.ParseMode(c.Forms.Mode)
}
