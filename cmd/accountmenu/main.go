package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/target/mmk-account-menu/config"
	"github.com/target/mmk-account-menu/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config failed", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}

	logger := bootstrap.InitLogger(cfg.LogLevel)
	if err := run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	logger.InfoContext(ctx, "starting account menu service",
		"addr", cfg.HTTP.Addr,
		"session_store", cfg.Auth.SessionStore,
		"default_variant", cfg.Menu.DefaultVariant,
		"dev", cfg.IsDev)

	var redisClient redis.UniversalClient
	if cfg.UsesRedis() {
		client, err := bootstrap.ConnectRedis(bootstrap.RedisOptions{Redis: cfg.Redis, Logger: logger})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			if cerr := client.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
		redisClient = client
	}

	return bootstrap.Run(ctx, &bootstrap.RunConfig{
		Config:      cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
}
