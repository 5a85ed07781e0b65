package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-admin-shell/internal/server"
	"github.com/goliatone/go-admin-shell/pkg/forms"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, forms and login page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	theme, err := a.cfg.ResolveTheme()
	if err != nil {
		return err
	}
	registry, err := a.registry(ctx)
	if err != nil {
		return err
	}
	srv, err := server.New(a.cfg.Server, registry,
		server.WithLogger(a.logger),
		server.WithTheme(theme),
	)
	if err != nil {
		return err
	}
	a.logger.Debug("forms registered", zap.Strings("forms", registry.List()))
	return srv.Run(ctx)
}

// registry builds every configured form with the logging completion
// handler.
func (a *app) registry(ctx context.Context) (*forms.Registry, error) {
	return server.BuildForms(ctx, a.cfg.Forms,
		forms.WithHandler(forms.LogHandler(a.logger)),
		forms.WithMode(a.cfg.ValidationMode()),
		forms.WithLogger(a.logger),
	)
}
