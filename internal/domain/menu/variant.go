package menu

import "strings"

// Variant selects the presentation density. It never affects menu state.
type Variant string

const (
	VariantDesktop Variant = "desktop"
	VariantMobile  Variant = "mobile"
)

// ParseVariant maps s to a Variant; empty or unknown input yields desktop.
func ParseVariant(s string) Variant {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantMobile:
		return VariantMobile
	default:
		return VariantDesktop
	}
}

func (v Variant) String() string {
	if v == "" {
		return string(VariantDesktop)
	}
	return string(v)
}

// IsMobile reports whether v is the compact variant.
func (v Variant) IsMobile() bool { return v == VariantMobile }
