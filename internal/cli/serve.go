package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/binderlca/internal/config"
	"github.com/rshade/binderlca/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr  string
	Watch bool
}

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison engine as a JSON HTTP API",
		Long: `Starts an HTTP server answering comparison queries. Design inputs come from
the query string and fall back to the configured design defaults.

Endpoints:
  GET /healthz
  GET /api/v1/baseline
  GET /api/v1/materials
  GET /api/v1/materials/{id}
  GET /api/v1/rows
  GET /api/v1/export.csv
  GET /api/v1/export.json
  GET /api/v1/sensitivity
  GET /api/v1/compare?ids=a,b,c
  GET /api/v1/savings?id=a

With --watch the catalog files are reloaded when they change on disk.`,
		Example: `  # Serve the embedded catalog
  binderlca serve

  # Serve a custom catalog on all interfaces with hot reload
  binderlca serve --catalog cements.yaml --addr :9000 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from server.addr)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "reload the catalog when its files change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	serverCfg := config.GetServerConfig()

	// CLI flags override config file
	addr := serverCfg.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	watch := serverCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	session, err := loadSession(cmd)
	if err != nil {
		return err
	}
	paths := catalogPaths(cmd)
	if watch && len(paths) == 0 {
		logger.Warn().Ctx(cmd.Context()).
			Str("operation", "serve").
			Msg("--watch has no effect with the embedded catalog")
		watch = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:            addr,
		Watch:           watch,
		Paths:           paths,
		ShutdownTimeout: time.Duration(serverCfg.ShutdownTimeoutSeconds) * time.Second,
		Defaults:        config.GetDesignDefaults().Inputs(),
		PageSize:        config.GetPageSize(),
		Logger:          baseLogger,
	}, session)

	cmd.Printf("Serving %d materials on http://%s (Ctrl+C to stop)\n", session.Catalog().Len(), addr)
	return srv.Serve(ctx)
}
