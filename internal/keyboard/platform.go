package keyboard

import "strings"

// Platform is the host operating system family as far as shortcut glyphs care.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformMac
)

func (p Platform) String() string {
	switch p {
	case PlatformMac:
		return "mac"
	default:
		return "other"
	}
}

// DetectPlatform reads the platform from request metadata. The
// Sec-CH-UA-Platform client hint wins when present; otherwise the User-Agent
// is searched for a Mac marker. iOS devices report Command keys too.
func DetectPlatform(userAgent, clientHintPlatform string) Platform {
	hint := strings.ToLower(strings.Trim(clientHintPlatform, `" `))
	if hint != "" {
		if hint == "macos" || hint == "ios" {
			return PlatformMac
		}
		return PlatformOther
	}
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"macintosh", "mac os", "iphone", "ipad"} {
		if strings.Contains(ua, marker) {
			return PlatformMac
		}
	}
	return PlatformOther
}

// ModifierGlyph returns the label prefix for the primary modifier.
func (p Platform) ModifierGlyph() string {
	if p == PlatformMac {
		return "⌘"
	}
	return "Ctrl+"
}

// ShortcutLabel renders the hint for the primary modifier plus key, e.g. "⌘Q".
func ShortcutLabel(p Platform, key string) string {
	return p.ModifierGlyph() + strings.ToUpper(key)
}
