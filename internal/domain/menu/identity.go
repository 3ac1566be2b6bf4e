// Package menu contains the headless account menu: its open/closed state
// machine, the item catalog and callback dispatch, and the global sign-out
// shortcut. Rendering lives in internal/http/ui/accountmenu.
package menu

import "strings"

// Identity is the user summary shown in the trigger and the menu header.
// Callers supply it on every render; the widget never stores a copy beyond the
// render that uses it.
type Identity struct {
	Name      string
	Email     string
	Role      string
	Initials  string
	AvatarURL string
}

// Avatar is the outcome of the fallback rule: exactly one of Image or
// Initials is meaningful, as reported by HasImage.
type Avatar struct {
	Image    string
	Initials string
}

// HasImage reports whether the image source should be rendered.
func (a Avatar) HasImage() bool { return a.Image != "" }

// ChooseAvatar renders the image when src is non-blank and falls back to the
// initials otherwise. There is no loading or error state.
func ChooseAvatar(src, initials string) Avatar {
	if s := strings.TrimSpace(src); s != "" {
		return Avatar{Image: s}
	}
	return Avatar{Initials: initials}
}

// Avatar applies ChooseAvatar to the identity.
func (i Identity) Avatar() Avatar {
	return ChooseAvatar(i.AvatarURL, i.Initials)
}
