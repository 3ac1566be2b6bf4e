package bootstrap

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/mmk-account-menu/config"
	"github.com/target/mmk-account-menu/internal/adapters/memstore"
	redisadapter "github.com/target/mmk-account-menu/internal/adapters/redis"
	"github.com/target/mmk-account-menu/internal/testutil"
)

func testAuthConfig(kind config.SessionStoreKind) config.AuthConfig {
	return config.AuthConfig{
		SessionStore:     kind,
		SessionTTL:       time.Hour,
		SessionKeyPrefix: "test:session:",
		DevAuth: config.DevAuthConfig{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Role:  "admin",
		},
	}
}

func TestBuildAuth_Memory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	got, err := BuildAuth(AuthConfig{Auth: testAuthConfig(config.SessionStoreMemory), Logger: logger})
	require.NoError(t, err)

	assert.IsType(t, &memstore.SessionStore{}, got.Sessions)
	assert.NotNil(t, got.Login)
}

func TestBuildAuth_RedisRequiresClient(t *testing.T) {
	_, err := BuildAuth(AuthConfig{Auth: testAuthConfig(config.SessionStoreRedis)})
	require.Error(t, err)
}

func TestBuildAuth_Redis(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	got, err := BuildAuth(AuthConfig{Auth: testAuthConfig(config.SessionStoreRedis), RedisClient: client})
	require.NoError(t, err)
	assert.IsType(t, &redisadapter.SessionStore{}, got.Sessions)
}

func TestBuildAuth_InvalidDevIdentity(t *testing.T) {
	cfg := testAuthConfig(config.SessionStoreMemory)
	cfg.DevAuth.Email = ""
	_, err := BuildAuth(AuthConfig{Auth: cfg})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
