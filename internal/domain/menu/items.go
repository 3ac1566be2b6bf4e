package menu

// ItemID identifies a selectable menu entry.
type ItemID string

const (
	ItemProfile    ItemID = "profile"
	ItemSettings   ItemID = "settings"
	ItemAppearance ItemID = "appearance"
	ItemHelp       ItemID = "help"
	ItemPrivacy    ItemID = "privacy"
	ItemSignOut    ItemID = "sign-out"
)

// ItemKind groups entries into the menu's sections.
type ItemKind int

const (
	// KindPrimary entries render per variant (two-line on desktop).
	KindPrimary ItemKind = iota
	// KindInfo entries are static and have no required callback.
	KindInfo
	// KindDanger is the sign-out entry.
	KindDanger
)

// Item describes one menu entry.
type Item struct {
	ID          ItemID
	Kind        ItemKind
	Title       string
	Description string
	// Shortcut is the key bound together with the primary modifier, if any.
	Shortcut string
}

// SignOutKey is the key that, with the primary modifier, signs the user out.
const SignOutKey = "q"

var catalog = []Item{
	{ID: ItemProfile, Kind: KindPrimary, Title: "My Profile", Description: "View and edit profile"},
	{ID: ItemSettings, Kind: KindPrimary, Title: "Settings", Description: "Manage preferences"},
	{ID: ItemAppearance, Kind: KindPrimary, Title: "Appearance", Description: "Theme and display"},
	{ID: ItemHelp, Kind: KindInfo, Title: "Help & Support"},
	{ID: ItemPrivacy, Kind: KindInfo, Title: "Privacy & Security"},
	{ID: ItemSignOut, Kind: KindDanger, Title: "Sign Out", Shortcut: SignOutKey},
}

// Items returns the menu entries in display order.
func Items() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// ItemsOfKind returns the entries of one section in display order.
func ItemsOfKind(kind ItemKind) []Item {
	var out []Item
	for _, it := range catalog {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// LookupItem finds an entry by id.
func LookupItem(id ItemID) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
