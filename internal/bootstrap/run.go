package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/target/mmk-account-menu/config"
	"github.com/target/mmk-account-menu/internal/adapters/reaper"
	httpx "github.com/target/mmk-account-menu/internal/http"
)

// RunConfig contains what Run needs to start the service.
type RunConfig struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // nil unless Config.UsesRedis()
	Logger      *slog.Logger
}

// Run serves HTTP and sweeps idle widgets until SIGINT or SIGTERM, or until
// either of them fails.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	auth, err := BuildAuth(AuthConfig{
		Auth:        cfg.Config.Auth,
		RedisClient: cfg.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	mc, err := BuildMetrics(cfg.Config.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := mc.Close(); cerr != nil {
			logger.Warn("close statsd client failed", "error", cerr)
		}
	}()

	windows := httpx.NewWindows(httpx.WindowsOptions{
		IdleTTL: cfg.Config.Menu.IdleTTL,
		Logger:  logger,
		Metrics: mc.Menu,
	})

	sweeper, err := reaper.NewRunner(reaper.RunnerOptions{
		Target:   windows,
		Interval: cfg.Config.Menu.ReapInterval,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("build menu reaper: %w", err)
	}

	server := NewHTTPServer(&HTTPServerConfig{
		Config:  cfg.Config,
		Auth:    auth,
		Windows: windows,
		Metrics: mc,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return ServeHTTP(gctx, server, cfg.Config.HTTP.ShutdownTimeout, logger)
	})
	group.Go(func() error {
		return sweeper.Run(gctx)
	})

	err = group.Wait()
	logger.Info("shutdown complete", "mounted_widgets", windows.Mounted())
	return err
}
