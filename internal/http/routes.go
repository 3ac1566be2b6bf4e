package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	mmkmenu "github.com/target/mmk-account-menu"
	"github.com/target/mmk-account-menu/internal/domain/menu"
	"github.com/target/mmk-account-menu/internal/http/ui/accountmenu"
	"github.com/target/mmk-account-menu/internal/ports"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions ports.SessionStore
	Login    ports.LoginProvider
	Windows  *Windows

	// MenuBasePath prefixes the widget endpoints; defaults to accountmenu.DefaultBasePath.
	MenuBasePath string
	// DefaultVariant is the header menu layout on content pages.
	DefaultVariant menu.Variant

	CookieDomain string
	IsDev        bool         // serve static files from disk
	Logger       *slog.Logger // optional
	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	basePath := strings.TrimRight(services.MenuBasePath, "/")
	if basePath == "" {
		basePath = accountmenu.DefaultBasePath
	}

	menuHandlers := &MenuHandlers{Windows: services.Windows, BasePath: basePath, Logger: services.Logger}
	pageHandlers := &PageHandlers{Menu: menuHandlers, DefaultVariant: services.DefaultVariant}
	authHandlers := &AuthHandlers{
		Provider:     services.Login,
		Sessions:     services.Sessions,
		Windows:      services.Windows,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	requireSession := RequireSession(services.Sessions)

	health := healthHandler(services.Windows)
	mux.Handle("GET "+PathHealth, health)
	mux.Handle("HEAD "+PathHealth, health)
	mux.Handle("GET "+PathStatic, staticHandler(services.IsDev))
	if services.Metrics != nil {
		mux.Handle("GET "+PathMetrics, services.Metrics)
	}

	registerAuthRoutes(mux, authHandlers)
	registerPageRoutes(mux, pageHandlers, requireSession)
	registerMenuRoutes(mux, menuHandlers, requireSession)
	mux.HandleFunc("/", NotFound)

	return CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET "+PathLogin, h.LoginForm)
	mux.HandleFunc("POST "+PathLogin, h.Login)
	mux.HandleFunc("GET "+PathLogout, h.Logout)
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandlers, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /{$}", mw(http.HandlerFunc(h.Home)))
	mux.Handle("GET "+PathProfile, mw(h.Info("My Profile", "View and edit your profile details.")))
	mux.Handle("GET "+PathSettings, mw(h.Info("Settings", "Manage your account preferences.")))
	mux.Handle("GET "+PathAppearance, mw(h.Info("Appearance", "Choose a theme and display density.")))
	mux.Handle("GET "+PathHelp, mw(h.Info("Help & Support", "Guides, FAQs and ways to reach the support team.")))
	mux.Handle("GET "+PathPrivacy, mw(h.Info("Privacy & Security", "Review sessions, data sharing and security settings.")))
}

func registerMenuRoutes(mux *http.ServeMux, h *MenuHandlers, mw func(http.Handler) http.Handler) {
	base := h.BasePath
	mux.Handle("POST "+base+"/{id}/open", mw(http.HandlerFunc(h.Open)))
	mux.Handle("POST "+base+"/{id}/dismiss", mw(http.HandlerFunc(h.Dismiss)))
	mux.Handle("POST "+base+"/{id}/select/{item}", mw(http.HandlerFunc(h.Select)))
	mux.Handle("POST "+base+"/{id}/unmount", mw(http.HandlerFunc(h.Unmount)))
	mux.Handle("POST "+PathKeys, mw(http.HandlerFunc(h.Keys)))
}

// staticHandler serves the key bridge script: from disk in dev mode so edits
// show up without a rebuild, from the embedded FS otherwise.
func staticHandler(isDev bool) http.Handler {
	var root http.FileSystem = http.Dir("frontend/static")
	if !isDev {
		if sub, err := fs.Sub(mmkmenu.StaticFS, "frontend/static"); err == nil {
			root = http.FS(sub)
		}
	}
	return noCache(http.StripPrefix(PathStatic, http.FileServer(root)))
}

// noCache keeps browsers from holding on to unhashed assets.
func noCache(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		handler.ServeHTTP(w, r)
	})
}
