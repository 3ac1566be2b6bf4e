package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownItem is returned when dispatching an id outside the catalog.
	ErrUnknownItem = errors.New("unknown menu item")
	// ErrMissingCallback is returned when a required callback is nil.
	ErrMissingCallback = errors.New("missing required callback")
)

// Callbacks are the caller's actions. The four On*Click/OnLogout procedures
// are required. OnHelpClick and OnPrivacyClick are optional; while nil the
// informational items stay inert.
type Callbacks struct {
	OnProfileClick    func()
	OnSettingsClick   func()
	OnAppearanceClick func()
	OnLogout          func()

	OnHelpClick    func()
	OnPrivacyClick func()
}

// Validate reports the first missing required callback.
func (c Callbacks) Validate() error {
	required := []struct {
		name string
		fn   func()
	}{
		{"OnProfileClick", c.OnProfileClick},
		{"OnSettingsClick", c.OnSettingsClick},
		{"OnAppearanceClick", c.OnAppearanceClick},
		{"OnLogout", c.OnLogout},
	}
	for _, r := range required {
		if r.fn == nil {
			return fmt.Errorf("%w: %s", ErrMissingCallback, r.name)
		}
	}
	return nil
}

// Dispatcher binds each item to at most one callback.
type Dispatcher struct {
	bound map[ItemID]func()
}

// NewDispatcher binds the catalog to cb.
func NewDispatcher(cb Callbacks) *Dispatcher {
	return &Dispatcher{bound: map[ItemID]func(){
		ItemProfile:    cb.OnProfileClick,
		ItemSettings:   cb.OnSettingsClick,
		ItemAppearance: cb.OnAppearanceClick,
		ItemHelp:       cb.OnHelpClick,
		ItemPrivacy:    cb.OnPrivacyClick,
		ItemSignOut:    cb.OnLogout,
	}}
}

// Bound reports whether id has a callback.
func (d *Dispatcher) Bound(id ItemID) bool {
	return d.bound[id] != nil
}

// Dispatch invokes the callback bound to id exactly once. invoked is false
// for entries without a callback. A panicking callback propagates to the
// caller untouched.
func (d *Dispatcher) Dispatch(id ItemID) (invoked bool, err error) {
	if _, ok := LookupItem(id); !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	fn := d.bound[id]
	if fn == nil {
		return false, nil
	}
	fn()
	return true, nil
}
