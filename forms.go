package adminshell

import (
	"context"
	"fmt"

	"github.com/goliatone/go-admin-shell/internal/openapi"
	"github.com/goliatone/go-admin-shell/pkg/forms"
)

// LoadForms builds a form for every POST operation of the OpenAPI document at
// path. options apply to each form.
func LoadForms(ctx context.Context, path string, options ...forms.Option) ([]*forms.Form, error) {
	raw, err := openapi.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defs, err := openapi.Parse(ctx, raw, openapi.Options{Strict: true})
	if err != nil {
		return nil, err
	}
	out := make([]*forms.Form, 0, len(defs))
	for _, def := range defs {
		form, err := forms.New(def.Model, def.Schema, options...)
		if err != nil {
			return nil, fmt.Errorf("adminshell: %w", err)
		}
		out = append(out, form)
	}
	return out, nil
}
