// Package server exposes the comparison engine as a JSON HTTP API. Every
// request reads its design inputs from the query string and computes from the
// session snapshot current when it started.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/binderlca/internal/catalog"
	"github.com/rshade/binderlca/internal/engine"
	"github.com/rshade/binderlca/internal/logging"
)

// Server defaults.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultShutdownTimeout = 10 * time.Second

	readHeaderTimeout = 10 * time.Second
	compressLevel     = 5
)

// Config holds configuration for the API server.
type Config struct {
	Addr string
	// Watch reloads the catalog when one of Paths changes on disk.
	Watch bool
	// Paths are the catalog files the session was loaded from.
	Paths           []string
	ShutdownTimeout time.Duration
	// Defaults are the design inputs used for parameters a request omits.
	Defaults engine.DesignInputs
	// PageSize is the row limit when a request gives none; 0 means all rows.
	PageSize int
	Logger   zerolog.Logger
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	holder *Holder
	logger zerolog.Logger
}

// New creates a server that starts from session.
func New(cfg Config, session *engine.Session) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	cfg.Defaults = cfg.Defaults.Normalized()
	return &Server{
		cfg:    cfg,
		holder: NewHolder(session, cfg.Paths),
		logger: logging.ComponentLogger(cfg.Logger, "server"),
	}
}

// Holder returns the session holder.
func (s *Server) Holder() *Holder {
	return s.holder
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Compress(compressLevel),
	)

	h := NewHandlers(s.holder, s.cfg.Defaults, s.cfg.PageSize)
	r.Get("/healthz", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/baseline", h.Baseline)
		r.Get("/materials", h.Materials)
		r.Get("/materials/{id}", h.Material)
		r.Get("/rows", h.Rows)
		r.Get("/export.csv", h.ExportCSV)
		r.Get("/export.json", h.ExportJSON)
		r.Get("/sensitivity", h.Sensitivity)
		r.Get("/compare", h.Compare)
		r.Get("/savings", h.Savings)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully. With Watch set, catalog changes swap in a new session.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	ctx = s.logger.WithContext(ctx)
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info().Ctx(ctx).
		Str("operation", "serve").
		Str("addr", ln.Addr().String()).
		Bool("watch", s.cfg.Watch).
		Msg("API server listening")

	if s.cfg.Watch && len(s.cfg.Paths) > 0 {
		eg.Go(func() error {
			return catalog.Watch(egctx, s.cfg.Paths, catalog.DefaultDebounce, func() {
				// A failed reload is logged and leaves the old session serving.
				_ = s.holder.Reload(egctx)
			})
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug().Ctx(ctx).Str("operation", "shutdown").Msg("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
