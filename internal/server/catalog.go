package server

import (
	"context"
	"fmt"

	"github.com/goliatone/go-admin-shell/internal/config"
	"github.com/goliatone/go-admin-shell/internal/openapi"
	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/model"
)

// BuildForms registers the generic and login forms plus every form declared
// in cfg.Document. Document forms are mounted under /forms/{id}. options are
// applied to every form.
func BuildForms(ctx context.Context, cfg config.FormsConfig, options ...forms.Option) (*forms.Registry, error) {
	registry := forms.NewRegistry()

	generic, err := forms.NewGeneric(cfg.Technologies, options...)
	if err != nil {
		return nil, fmt.Errorf("server: generic form: %w", err)
	}
	registry.MustRegister(generic)

	login, err := forms.NewLogin(options...)
	if err != nil {
		return nil, fmt.Errorf("server: login form: %w", err)
	}
	registry.MustRegister(login)

	if cfg.Document == "" {
		return registry, nil
	}
	raw, err := openapi.LoadFile(ctx, cfg.Document)
	if err != nil {
		return nil, err
	}
	defs, err := openapi.Parse(ctx, raw, openapi.Options{Strict: true})
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		mount := model.DecoratorFunc(func(fm *model.FormModel) error {
			fm.Endpoint = "/forms/" + fm.ID
			return nil
		})
		opts := append(append([]forms.Option(nil), options...), forms.WithDecorators(mount))
		form, err := forms.New(def.Model, def.Schema, opts...)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(form); err != nil {
			return nil, fmt.Errorf("server: document %s: %w", cfg.Document, err)
		}
	}
	return registry, nil
}
