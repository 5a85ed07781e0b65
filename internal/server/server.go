// Package server exposes the admin shell pages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-admin-shell/internal/config"
	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/renderers/jsonapi"
	"github.com/goliatone/go-admin-shell/pkg/renderers/tui"
	"github.com/goliatone/go-admin-shell/pkg/renderers/vanilla"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderers replaces the default renderer set. The first registered
// renderer answers requests without a matching Accept header.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithNav replaces the sidebar navigation.
func WithNav(nav sidebar.Nav) Option {
	return func(s *Server) {
		s.nav = nav
	}
}

// WithTheme applies theme tokens to every sidebar.
func WithTheme(theme sidebar.Theme) Option {
	return func(s *Server) {
		s.theme = theme
	}
}

// WithIDGenerator overrides request id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Server routes page requests to forms and renderers.
type Server struct {
	cfg       config.ServerConfig
	forms     *forms.Registry
	renderers *render.Registry
	nav       sidebar.Nav
	theme     sidebar.Theme
	logger    *zap.Logger
	newID     func() string
	router    *mux.Router
}

// New wires the router. registry must hold the generic and login forms.
func New(cfg config.ServerConfig, registry *forms.Registry, options ...Option) (*Server, error) {
	if registry == nil {
		return nil, errors.New("server: form registry is required")
	}
	for _, id := range []string{forms.GenericFormID, forms.LoginFormID} {
		if _, err := registry.Get(id); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}

	s := &Server{
		cfg:    cfg,
		forms:  registry,
		nav:    sidebar.DefaultNav(),
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderers == nil {
		renderers, err := DefaultRenderers(cfg.AssetsPrefix)
		if err != nil {
			return nil, err
		}
		s.renderers = renderers
	}
	s.router = s.routes()
	return s, nil
}

// DefaultRenderers registers the HTML renderer first, then JSON and plain
// text.
func DefaultRenderers(assetsPrefix string) (*render.Registry, error) {
	html, err := vanilla.New(vanilla.WithAssetsPrefix(assetsPrefix))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(jsonapi.New())
	registry.MustRegister(tui.New())
	return registry, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(listener)
	}()
	s.logger.Info("admin shell listening", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	s.logger.Info("admin shell shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
