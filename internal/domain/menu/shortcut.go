package menu

import (
	"sync"

	"github.com/target/mmk-account-menu/internal/keyboard"
)

// Shortcut binds primary-modifier+Q on a window stream to a sign-out
// callback. It is independent of the menu's open state.
type Shortcut struct {
	once   sync.Once
	remove func()
}

// MountShortcut registers one listener on stream. Every matching key-down
// has its default prevented and calls onLogout once; other chords are ignored.
func MountShortcut(stream *keyboard.Stream, onLogout func()) *Shortcut {
	remove := stream.Add(func(e *keyboard.Event) {
		if !keyboard.IsPrimaryChord(e, SignOutKey) {
			return
		}
		e.PreventDefault()
		onLogout()
	})
	return &Shortcut{remove: remove}
}

// Unmount deregisters the listener. It is safe to call more than once.
func (s *Shortcut) Unmount() {
	s.once.Do(s.remove)
}
