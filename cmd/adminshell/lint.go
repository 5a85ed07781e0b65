package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-admin-shell/internal/openapi"
)

var errLint = errors.New("unsupported form extensions found")

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [documents...]",
		Short: "Lint OpenAPI documents for unsupported form extensions",
		Long: `Lint checks every x-formgen extension on POST operations and request body
schemas. Without arguments the configured forms.document is linted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 && a.cfg.Forms.Document != "" {
				paths = []string{a.cfg.Forms.Document}
			}
			if len(paths) == 0 {
				return errors.New("no document to lint")
			}

			found := 0
			for _, path := range paths {
				raw, err := openapi.LoadFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				violations, err := openapi.Lint(cmd.Context(), raw)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				for _, v := range violations {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, v)
				}
				found += len(violations)
			}
			if found > 0 {
				return errLint
			}
			return nil
		},
	}
}
