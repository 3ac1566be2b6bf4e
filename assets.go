// Package mmkmenu provides embedded assets for production builds.
package mmkmenu

import "embed"

// StaticFS holds the browser side of the account menu. In dev mode
// (IsDev=true) the same files are served from disk instead.
//
//go:embed all:frontend/static
var StaticFS embed.FS
