package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/mmk-account-menu/config"
	"github.com/target/mmk-account-menu/internal/adapters/devauth"
	"github.com/target/mmk-account-menu/internal/adapters/memstore"
	redisadapter "github.com/target/mmk-account-menu/internal/adapters/redis"
	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
	"github.com/target/mmk-account-menu/internal/ports"
)

// AuthConfig contains configuration for the session layer.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient // required when Auth.SessionStore is redis
	Logger      *slog.Logger
}

// AuthComponents are the session store and login provider the router uses.
type AuthComponents struct {
	Sessions ports.SessionStore
	Login    ports.LoginProvider
}

// BuildAuth selects the session store and builds the dev login provider.
func BuildAuth(cfg AuthConfig) (AuthComponents, error) {
	sessions, err := buildSessionStore(cfg)
	if err != nil {
		return AuthComponents{}, err
	}

	dev := cfg.Auth.DevAuth
	login, err := devauth.NewProvider(devauth.Config{
		Name:            dev.Name,
		Email:           dev.Email,
		Role:            domainauth.Role(dev.Role),
		AvatarURL:       dev.AvatarURL,
		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		return AuthComponents{}, fmt.Errorf("build dev login provider: %w", err)
	}

	return AuthComponents{Sessions: sessions, Login: login}, nil
}

//nolint:ireturn // the store kind is chosen at runtime.
func buildSessionStore(cfg AuthConfig) (ports.SessionStore, error) {
	switch cfg.Auth.SessionStore {
	case config.SessionStoreRedis:
		if cfg.RedisClient == nil {
			return nil, errors.New("redis session store selected but redis client not configured")
		}
		if cfg.Logger != nil {
			cfg.Logger.Info("using redis session store", "prefix", cfg.Auth.SessionKeyPrefix)
		}
		return redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.Auth.SessionKeyPrefix), nil
	case config.SessionStoreMemory, "":
		if cfg.Logger != nil {
			cfg.Logger.Info("using in-memory session store")
		}
		return memstore.NewSessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Auth.SessionStore)
	}
}
