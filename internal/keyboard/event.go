// Package keyboard models the window-level key-down stream that page widgets
// attach global shortcuts to.
package keyboard

import "strings"

// Event is a key-down notification delivered to every listener of a Stream.
// Key and modifier fields are fixed at construction; only the prevented flag
// changes while the event travels through listeners.
type Event struct {
	Key   string `json:"key"`
	Meta  bool   `json:"meta"`
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Shift bool   `json:"shift"`

	prevented bool
}

// Modifier identifies a modifier key held during an Event.
type Modifier uint8

const (
	ModMeta Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModShift
)

// NewEvent builds a key-down event for key with the given modifiers held.
func NewEvent(key string, mods ...Modifier) *Event {
	e := &Event{Key: key}
	for _, m := range mods {
		e.Meta = e.Meta || m&ModMeta != 0
		e.Ctrl = e.Ctrl || m&ModCtrl != 0
		e.Alt = e.Alt || m&ModAlt != 0
		e.Shift = e.Shift || m&ModShift != 0
	}
	return e
}

// PreventDefault marks the event so the host suppresses its default action.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether any listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// IsPrimaryChord reports whether the platform's primary modifier (Command on
// macOS, Control elsewhere) is held together with key. Either modifier is
// accepted so the binding works regardless of which platform the browser
// reports. Key comparison ignores case.
func IsPrimaryChord(e *Event, key string) bool {
	if e == nil {
		return false
	}
	if !e.Meta && !e.Ctrl {
		return false
	}
	return strings.EqualFold(e.Key, key)
}
