package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/askeland/pinplace/internal/server"
	"github.com/askeland/pinplace/pkg/cache"
	"github.com/askeland/pinplace/pkg/pipeline"
	"github.com/askeland/pinplace/pkg/runstore"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheKey string
		redisURL string
		storeKey string
		mongoURI string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement pipeline over HTTP",
		Long: `Serve the placement pipeline over HTTP.

Designs posted to /v1/place are placed and persisted as runs; runs can be
listed, fetched, and deleted under /v1/runs. Cache and run-store backends
are selectable: the file backends match the CLI defaults, redis and mongo
suit shared deployments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, cacheKey, redisURL, storeKey, mongoURI, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cacheKey, "cache", "file", "cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379/0", "redis URL for --cache redis")
	cmd.Flags().StringVar(&storeKey, "store", "memory", "run store backend: memory (default), file, mongo")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo URI for --store mongo")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "mongo database for --store mongo")

	return cmd
}

// runServe builds the selected backends and runs the HTTP server until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, cacheKey, redisURL, storeKey, mongoURI, mongoDB string) error {
	cch, err := serveCache(ctx, cacheKey, redisURL)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	store, err := serveStore(ctx, storeKey, mongoURI, mongoDB)
	if err != nil {
		return fmt.Errorf("initialize run store: %w", err)
	}
	defer store.Close()

	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, store, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "cache", cacheKey, "store", storeKey)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	c.Logger.Info("server stopped")
	return nil
}

// serveCache maps the --cache flag onto a cache backend.
func serveCache(ctx context.Context, key, redisURL string) (cache.Cache, error) {
	switch key {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, redisURL)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", key)
	}
}

// serveStore maps the --store flag onto a run store backend.
func serveStore(ctx context.Context, key, mongoURI, mongoDB string) (runstore.Store, error) {
	switch key {
	case "memory":
		return runstore.NewMemoryStore(), nil
	case "file":
		return runstore.NewFileStore("")
	case "mongo":
		return runstore.NewMongoStore(ctx, mongoURI, mongoDB)
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'file', or 'mongo')", key)
	}
}
