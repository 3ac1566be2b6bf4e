package config

import (
	"strings"
	"time"
)

// MenuConfig controls how the host mounts account menu widgets.
type MenuConfig struct {
	// DefaultVariant is used when a page does not ask for a specific layout.
	DefaultVariant string `env:"MENU_DEFAULT_VARIANT" envDefault:"desktop"`

	// BasePath prefixes the widget's HTMX endpoints.
	BasePath string `env:"MENU_BASE_PATH" envDefault:"/ui/account-menu"`

	// IdleTTL is how long a mounted widget may go without interaction
	// before the reaper unmounts it (tabs closed without a pagehide beacon).
	IdleTTL time.Duration `env:"MENU_IDLE_TTL" envDefault:"30m"`

	// ReapInterval is how often idle widgets are looked for.
	ReapInterval time.Duration `env:"MENU_REAP_INTERVAL" envDefault:"1m"`
}

// Sanitize applies guardrails to menu configuration values.
func (m *MenuConfig) Sanitize() {
	m.DefaultVariant = strings.ToLower(strings.TrimSpace(m.DefaultVariant))
	if m.DefaultVariant != "mobile" {
		m.DefaultVariant = "desktop"
	}

	m.BasePath = "/" + strings.Trim(strings.TrimSpace(m.BasePath), "/")
	if m.BasePath == "/" {
		m.BasePath = "/ui/account-menu"
	}

	if m.IdleTTL < time.Minute {
		m.IdleTTL = time.Minute
	}
	if m.ReapInterval <= 0 {
		m.ReapInterval = time.Minute
	}
	if m.ReapInterval > m.IdleTTL {
		m.ReapInterval = m.IdleTTL
	}
}
