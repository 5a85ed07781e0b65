package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

var errInvalid = errors.New("values are invalid")

func newValidateCmd(a *app) *cobra.Command {
	var (
		format string
		submit bool
	)
	cmd := &cobra.Command{
		Use:   "validate <form-id> <values.yaml>",
		Short: "Validate a YAML values file against a form",
		Long: `Validate decodes a YAML (or JSON) mapping of field names to values and
runs the form's schema over it. Lists select checkbox options; a mapping with
name, contentType and size describes a file.

With --submit a valid file is also handed to the completion handler.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(format)
			if err != nil {
				return err
			}
			registry, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}
			form, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			values, err := readValues(args[1])
			if err != nil {
				return err
			}

			fm := form.Model()
			page := render.Page{Kind: render.PageForm, Form: &fm, Values: values}
			var submitErr error
			result := form.Validate(values)
			if submit && result.Valid() {
				result, submitErr = form.Submit(cmd.Context(), values)
				page.Submitted = submitErr == nil && result.Valid()
				if page.Submitted {
					page.Data = render.PublicData(fm, values)
				}
			}
			page.Errors = render.MapResult(fm, result, submitErr)

			body, err := renderer.Render(cmd.Context(), page)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(body); err != nil {
				return err
			}
			if !page.Valid() {
				a.logger.Debug("validation failed", zap.String("form", fm.ID), zap.Strings("fields", result.Fields()))
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: html, json or text")
	cmd.Flags().BoolVar(&submit, "submit", false, "invoke the completion handler when valid")
	return cmd
}

func readValues(path string) (validation.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode values %s: %w", path, err)
	}
	values := make(validation.Values, len(raw))
	for name, value := range raw {
		values[name] = validation.ValueFromAny(value)
	}
	return values, nil
}
