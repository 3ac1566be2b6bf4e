package menu

import (
	"errors"
	"sync"
)

var (
	// ErrMenuClosed is returned when an item is selected while the menu is closed.
	ErrMenuClosed = errors.New("menu is closed")
	// ErrUnmounted is returned when an item is selected after the widget was unmounted.
	ErrUnmounted = errors.New("menu widget is unmounted")
)

// State is the menu's visibility.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Controller is the open/closed state machine:
//
//	closed --Activate--> open
//	open   --Select-->   closed (after dispatching the item's callback)
//	open   --Dismiss-->  closed
//
// It is safe for concurrent use. The lock is not held while a callback runs,
// so callbacks may call back into the controller.
type Controller struct {
	mu         sync.Mutex
	state      State
	released   bool
	dispatcher *Dispatcher
}

// NewController returns a closed controller dispatching through d.
func NewController(d *Dispatcher) *Controller {
	return &Controller{state: StateClosed, dispatcher: d}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Activate handles the trigger. Opening an open menu leaves it open.
func (c *Controller) Activate() {
	c.mu.Lock()
	c.state = StateOpen
	c.mu.Unlock()
}

// Dismiss closes the menu without dispatching anything.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	c.state = StateClosed
	c.mu.Unlock()
}

// Select dispatches id and closes the menu. invoked reports whether a
// callback ran; informational items without one close the menu silently.
// Selecting while closed returns ErrMenuClosed and selecting after the owning
// widget unmounted returns ErrUnmounted; neither dispatches anything.
// If the callback panics the menu stays open and the panic propagates.
func (c *Controller) Select(id ItemID) (invoked bool, err error) {
	c.mu.Lock()
	switch {
	case c.released:
		c.mu.Unlock()
		return false, ErrUnmounted
	case c.state != StateOpen:
		c.mu.Unlock()
		return false, ErrMenuClosed
	}
	c.mu.Unlock()

	invoked, err = c.dispatcher.Dispatch(id)
	if err != nil {
		return false, err
	}

	c.Dismiss()
	return invoked, nil
}

// release closes the menu for good. Later selections return ErrUnmounted.
func (c *Controller) release() {
	c.mu.Lock()
	c.state = StateClosed
	c.released = true
	c.mu.Unlock()
}
