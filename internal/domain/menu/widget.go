package menu

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/target/mmk-account-menu/internal/keyboard"
)

// Props is the widget's mount-time contract. The identity is not part of it:
// callers pass the current Identity to every render instead.
type Props struct {
	Callbacks Callbacks
	// Variant defaults to desktop when empty.
	Variant Variant
}

// Widget is one mounted account menu: a controller plus the shortcut
// registration scoped to the mount.
type Widget struct {
	id         string
	props      Props
	controller *Controller
	shortcut   *Shortcut

	mu        sync.Mutex
	unmounted bool
}

// Mount validates props, registers the sign-out shortcut on stream and
// returns a closed widget. Callers must Unmount it on every exit path.
func Mount(stream *keyboard.Stream, props Props) (*Widget, error) {
	if stream == nil {
		return nil, errors.New("keyboard stream is required")
	}
	if err := props.Callbacks.Validate(); err != nil {
		return nil, err
	}
	props.Variant = ParseVariant(string(props.Variant))

	return &Widget{
		id:         uuid.NewString(),
		props:      props,
		controller: NewController(NewDispatcher(props.Callbacks)),
		shortcut:   MountShortcut(stream, props.Callbacks.OnLogout),
	}, nil
}

// ID returns the instance identifier.
func (w *Widget) ID() string { return w.id }

// Props returns the props the widget was mounted with.
func (w *Widget) Props() Props { return w.props }

// Controller returns the widget's state machine.
func (w *Widget) Controller() *Controller { return w.controller }

// Mounted reports whether Unmount has not been called yet.
func (w *Widget) Mounted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.unmounted
}

// Unmount releases the shortcut listener and stops the controller from
// dispatching further selections. It is idempotent.
func (w *Widget) Unmount() {
	w.mu.Lock()
	w.unmounted = true
	w.mu.Unlock()
	w.controller.release()
	w.shortcut.Unmount()
}
