package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/leveling/internal/server"
	"github.com/matzehuels/leveling/pkg/buildinfo"
	"github.com/matzehuels/leveling/pkg/cache"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

const (
	defaultAddr            = "127.0.0.1:8080"
	defaultShutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		so   serveOptions
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Routes:
  GET  /healthz
  POST /v1/layout              {"graph": ..., "options": ...} → layout JSON
  POST /v1/render/{format}     {"graph": ..., "options": ...} → artifact
  POST /v1/visualize/{format}  {"layout": ..., "options": ...} → artifact

Set LEVELING_REDIS_URL to share cached layouts between instances. Use
--scope to keep one deployment's entries apart from others on the same Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return c.runServe(cmd.Context(), ln, so)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&so.scope, "scope", "", "cache key namespace")
	cmd.Flags().BoolVar(&so.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&so.maxNodes, "max-nodes", pipeline.DefaultMaxNodes, "reject request graphs with more nodes")
	cmd.Flags().IntVar(&so.maxEdges, "max-edges", pipeline.DefaultMaxEdges, "reject request graphs with more edges")

	return cmd
}

type serveOptions struct {
	scope              string
	noCache            bool
	maxNodes, maxEdges int
}

// runServe serves on ln until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, ln net.Listener, so serveOptions) error {
	if so.maxNodes < 0 || so.maxEdges < 0 {
		return lverrors.New(lverrors.ErrCodeInvalidOption, "graph limits must not be negative")
	}
	runner, err := c.newRunner(ctx, so.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	if so.scope != "" {
		runner.Keyer = cache.NewScopedKeyer(runner.Keyer, so.scope+":")
	}

	api := server.New(runner, c.Logger)
	api.SetGraphLimits(so.maxNodes, so.maxEdges)
	srv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %s", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("version", buildinfo.Short())
	printKeyValue("cache", fmt.Sprintf("%T", runner.Cache))
	printKeyValue("limits", fmt.Sprintf("%d nodes, %d edges", so.maxNodes, so.maxEdges))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
