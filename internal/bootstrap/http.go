package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/mmk-account-menu/config"
	"github.com/target/mmk-account-menu/internal/adapters/reaper"
	"github.com/target/mmk-account-menu/internal/domain/menu"
	httpx "github.com/target/mmk-account-menu/internal/http"
)

var _ reaper.Target = (*httpx.Windows)(nil)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config  *config.AppConfig
	Auth    AuthComponents
	Windows *httpx.Windows
	Metrics MetricsComponents
	Logger  *slog.Logger
}

// BuildHTTPHandler wires the router and wraps it with the standard middleware.
// Order: Recover -> Logging -> Router.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Sessions:       cfg.Auth.Sessions,
		Login:          cfg.Auth.Login,
		Windows:        cfg.Windows,
		MenuBasePath:   appCfg.Menu.BasePath,
		DefaultVariant: menu.ParseVariant(appCfg.Menu.DefaultVariant),
		CookieDomain:   appCfg.HTTP.CookieDomain,
		IsDev:          appCfg.IsDev,
		Logger:         logger,
	}
	if appCfg.Metrics.Enabled && cfg.Metrics.Menu != nil {
		services.Metrics = cfg.Metrics.Menu.Handler()
	}

	h := httpx.Logging(logger)(httpx.NewRouter(services))
	h = httpx.Recover(logger)(h)
	return h
}

// NewHTTPServer builds the server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           BuildHTTPHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ServeHTTP runs server until ctx is cancelled, then shuts it down within timeout.
func ServeHTTP(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return <-errCh
}
