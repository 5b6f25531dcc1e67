package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotkit/plotkit/pkg/cache"
	"github.com/plotkit/plotkit/pkg/server"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command running the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, cacheBackend, redisAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render service",
		Long:  `Serve runs an HTTP service with a POST /render endpoint that accepts JSON point data and returns scatter plot PNGs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.serveConfig()
			if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
				addr = cfg.Addr
			}
			if !cmd.Flags().Changed("cache") && cfg.Cache != "" {
				cacheBackend = cfg.Cache
			}
			if !cmd.Flags().Changed("redis-addr") && cfg.RedisAddr != "" {
				redisAddr = cfg.RedisAddr
			}
			return c.runServe(cmd.Context(), addr, cacheBackend, redisAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&cacheBackend, "cache", "none", "render cache backend: none, file, redis")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for --cache redis")

	return cmd
}

// serveConfig loads the [serve] section of the config file, tolerating a
// missing or unreadable config.
func (c *CLI) serveConfig() ServeConfig {
	path, err := configPath()
	if err != nil {
		return ServeConfig{}
	}
	cfg, err := loadConfig(path)
	if err != nil {
		c.Logger.Warnf("ignoring config %s: %v", path, err)
		return ServeConfig{}
	}
	return cfg.Serve
}

// newServeCache builds the cache backend for the service.
func (c *CLI) newServeCache(ctx context.Context, backend, redisAddr string) (cache.Cache, error) {
	switch backend {
	case "none", "":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, redisAddr)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'none', 'file', or 'redis')", backend)
	}
}

// runServe starts the HTTP service and blocks until ctx is cancelled, then
// shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr, cacheBackend, redisAddr string) error {
	renderCache, err := c.newServeCache(ctx, cacheBackend, redisAddr)
	if err != nil {
		return err
	}
	defer renderCache.Close()

	srv := &http.Server{
		Addr: addr,
		Handler: server.New(
			server.WithCache(renderCache),
			server.WithLogger(c.Logger),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s (cache: %s)", addr, cacheBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
