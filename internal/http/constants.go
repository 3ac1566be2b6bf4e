package httpx

import "github.com/target/mmk-account-menu/internal/domain/menu"

// Routes the host serves. The menu's callbacks navigate to these.
const (
	PathHome       = "/"
	PathLogin      = "/auth/login"
	PathLogout     = "/auth/logout"
	PathProfile    = "/profile"
	PathSettings   = "/settings"
	PathAppearance = "/settings/appearance"
	PathHelp       = "/help"
	PathPrivacy    = "/privacy"
	PathKeys       = "/ui/keys"
	PathStatic     = "/static/"
	PathHealth     = "/healthz"
	PathMetrics    = "/metrics"
)

// navigationTargets maps each menu item to the page its callback opens.
//
//nolint:gochecknoglobals // static read-only lookup
var navigationTargets = map[menu.ItemID]string{
	menu.ItemProfile:    PathProfile,
	menu.ItemSettings:   PathSettings,
	menu.ItemAppearance: PathAppearance,
	menu.ItemHelp:       PathHelp,
	menu.ItemPrivacy:    PathPrivacy,
	menu.ItemSignOut:    PathLogout,
}
