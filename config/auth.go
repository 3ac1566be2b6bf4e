package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects where host sessions are kept.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps sessions in process (single replica, development).
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps sessions in Redis with TTLs.
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis)", v)
	}
}

// DevAuthConfig controls the dev login identity.
type DevAuthConfig struct {
	Name      string `env:"NAME"       envDefault:"Ada Lovelace"`
	Email     string `env:"EMAIL"      envDefault:"ada@example.com"`
	Role      string `env:"ROLE"       envDefault:"admin"`
	AvatarURL string `env:"AVATAR_URL" envDefault:""`
}

// AuthConfig groups session-related configuration.
type AuthConfig struct {
	// SessionStore determines which session store to use.
	SessionStore SessionStoreKind `env:"SESSION_STORE" envDefault:"memory"`

	// SessionTTL is how long a login lasts.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// SessionKeyPrefix namespaces session keys in Redis.
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"accountmenu:session:"`

	// DevAuth configuration for the login form.
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionStore == "" {
		a.SessionStore = SessionStoreMemory
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
	if strings.TrimSpace(a.SessionKeyPrefix) == "" {
		a.SessionKeyPrefix = "accountmenu:session:"
	}
	a.DevAuth.Role = strings.ToLower(strings.TrimSpace(a.DevAuth.Role))
}
