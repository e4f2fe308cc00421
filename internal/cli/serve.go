package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/grapheq/grapheq/internal/server"
)

// shutdownTimeout bounds graceful shutdown of the HTTP service.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the 'serve' command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP diff service",
		Long:  `Start an HTTP service exposing canonicalization and structural comparison. POST /v1/canonical returns the canonical form of a graph; POST /v1/diff compares two graphs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			store, err := c.newCache(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(store, c.Logger)
			httpServer := &http.Server{
				Addr:              cfg.Listen,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()

			c.Logger.Info("listening", "addr", cfg.Listen, "cache", cfg.CacheBackend)
			printInfo("Serving on %s", cfg.Listen)

			select {
			case err := <-errCh:
				return fmt.Errorf("server: %w", err)
			case <-cmd.Context().Done():
			}

			c.Logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, then "+DefaultListenAddr+")")

	return cmd
}
