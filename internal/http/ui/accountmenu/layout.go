// Package accountmenu renders the account menu widget as gomponents nodes.
// Rendering is a pure function of the view; state changes go through the
// menu package and come back here as a new View.
package accountmenu

import "github.com/target/mmk-account-menu/internal/domain/menu"

// ItemStyle is how primary menu entries are drawn.
type ItemStyle int

const (
	// ItemStyleTwoLine draws title plus description with a hover chevron.
	ItemStyleTwoLine ItemStyle = iota
	// ItemStyleSingleLine draws an icon and a label on one row.
	ItemStyleSingleLine
)

// AvatarSize selects one of the avatar dimensions.
type AvatarSize string

const (
	AvatarSM AvatarSize = "sm"
	AvatarMD AvatarSize = "md"
	AvatarLG AvatarSize = "lg"
)

func (s AvatarSize) class() string {
	switch s {
	case AvatarMD:
		return "w-9 h-9"
	case AvatarLG:
		return "w-12 h-12"
	default:
		return "w-8 h-8"
	}
}

// Layout is the structural description selected by a variant.
type Layout struct {
	// TriggerShowsIdentity adds name and role text next to the trigger avatar.
	TriggerShowsIdentity bool
	// TriggerAffordance adds the directional chevron to the trigger.
	TriggerAffordance bool
	ItemStyle         ItemStyle
	// HoverAffordance reveals a chevron on hovered primary entries.
	HoverAffordance bool
	TriggerAvatar   AvatarSize
}

// LayoutFor maps a variant to its layout.
func LayoutFor(v menu.Variant) Layout {
	if v.IsMobile() {
		return Layout{
			ItemStyle:     ItemStyleSingleLine,
			TriggerAvatar: AvatarMD,
		}
	}
	return Layout{
		TriggerShowsIdentity: true,
		TriggerAffordance:    true,
		ItemStyle:            ItemStyleTwoLine,
		HoverAffordance:      true,
		TriggerAvatar:        AvatarSM,
	}
}
