package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/mmk-account-menu/config"
	"github.com/target/mmk-account-menu/internal/observability/metrics"
	"github.com/target/mmk-account-menu/internal/observability/statsd"
)

// MetricsComponents holds the recorder and the StatsD client to close on shutdown.
type MetricsComponents struct {
	Menu   *metrics.Menu // nil when metrics are disabled
	Statsd *statsd.Client
}

// Close releases the StatsD connection.
func (m MetricsComponents) Close() error {
	return m.Statsd.Close()
}

// BuildMetrics creates the menu recorder and, when configured, its StatsD mirror.
func BuildMetrics(cfg config.MetricsConfig, logger *slog.Logger) (MetricsComponents, error) {
	if !cfg.Enabled && !cfg.StatsdEnabled {
		return MetricsComponents{}, nil
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.StatsdEnabled,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return MetricsComponents{}, fmt.Errorf("build statsd client: %w", err)
	}
	if client.Enabled() {
		logger.Info("statsd metrics enabled", "address", cfg.StatsdAddress)
	}

	opts := metrics.MenuOptions{Namespace: cfg.Prefix, Runtime: true}
	if client.Enabled() {
		opts.Sink = client
	}
	return MetricsComponents{Menu: metrics.NewMenu(opts), Statsd: client}, nil
}
