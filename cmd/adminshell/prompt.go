package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [form-id]",
		Short: "Fill a form interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := forms.LoginFormID
			if len(args) == 1 {
				id = args[0]
			}
			registry, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}
			form, err := registry.Get(id)
			if err != nil {
				return err
			}

			var accepted forms.Submission
			capture := forms.WithHandler(func(ctx context.Context, submission forms.Submission) error {
				accepted = submission
				return forms.LogHandler(a.logger)(ctx, submission)
			})
			form, err = forms.New(form.Model(), form.Schema(), capture,
				forms.WithMode(a.cfg.ValidationMode()),
				forms.WithLogger(a.logger))
			if err != nil {
				return err
			}

			session := tui.NewSession(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithSessionLogger(a.logger),
			)
			if _, err := session.Fill(cmd.Context(), form); err != nil {
				if errors.Is(err, tui.ErrAborted) || errors.Is(err, tui.ErrDeclined) {
					cmd.PrintErrln("Cancelled")
					return nil
				}
				return err
			}

			fm := form.Model()
			body, err := tui.New().Render(cmd.Context(), render.Page{
				Kind:      render.PageForm,
				Title:     fm.Title,
				Submitted: true,
				Data:      render.PublicData(fm, accepted.Values),
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}
