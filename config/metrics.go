package config

import "strings"

// MetricsConfig controls the Prometheus endpoint and the optional StatsD mirror.
type MetricsConfig struct {
	// Enabled serves /metrics.
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// StatsdEnabled mirrors every observation to a StatsD agent.
	StatsdEnabled bool   `env:"METRICS_STATSD_ENABLED" envDefault:"false"`
	StatsdAddress string `env:"METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"METRICS_PREFIX"         envDefault:"accountmenu"`
}

// Sanitize normalises addresses and turns StatsD off when it has nowhere to go.
func (c *MetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.StatsdEnabled = false
	}
	c.Prefix = strings.Trim(strings.TrimSpace(c.Prefix), ".")
	if c.Prefix == "" {
		c.Prefix = "accountmenu"
	}
}
