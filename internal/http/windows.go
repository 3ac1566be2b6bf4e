package httpx

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/target/mmk-account-menu/internal/domain/menu"
	apperrors "github.com/target/mmk-account-menu/internal/errors"
	"github.com/target/mmk-account-menu/internal/keyboard"
	"github.com/target/mmk-account-menu/internal/observability/metrics"
)

// navigator remembers the last page a widget callback asked for. Handlers
// take it after dispatching and turn it into a redirect.
type navigator struct {
	mu     sync.Mutex
	target string
}

func (n *navigator) to(path string) func() {
	return func() {
		n.mu.Lock()
		n.target = path
		n.mu.Unlock()
	}
}

func (n *navigator) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	t := n.target
	n.target = ""
	return t
}

type mountedWidget struct {
	widget   *menu.Widget
	lastSeen time.Time
}

// window is the server-side stand-in for one signed-in browser: a single
// keyboard stream that every widget the session mounts listens on.
type window struct {
	stream *keyboard.Stream
	nav    navigator

	mu      sync.Mutex
	widgets map[string]*mountedWidget
}

func (w *window) touchAll(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range w.widgets {
		m.lastSeen = now
	}
}

// WindowsOptions configures a Windows registry.
type WindowsOptions struct {
	// IdleTTL is how long a widget may go untouched before Reap unmounts it.
	IdleTTL time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Menu // optional
	// Now defaults to time.Now.
	Now func() time.Time
}

// Windows tracks the mounted account menus of every session.
type Windows struct {
	idleTTL time.Duration
	logger  *slog.Logger
	metrics *metrics.Menu
	now     func() time.Time

	mu   sync.Mutex
	byID map[string]*window
}

// NewWindows creates an empty registry.
func NewWindows(opts WindowsOptions) *Windows {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	return &Windows{
		idleTTL: opts.IdleTTL,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
		byID:    make(map[string]*window),
	}
}

// navigate returns the callback for item: it points the window's navigator
// at the item's page.
func (ws *Windows) navigate(win *window, item menu.ItemID) func() {
	return win.nav.to(navigationTargets[item])
}

// RecordSelection counts an item chosen from an open menu. The sign-out
// shortcut does not go through here.
func (ws *Windows) RecordSelection(item menu.ItemID) {
	ws.metrics.Selected(string(item))
}

func (ws *Windows) window(sessionID string) *window {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.byID[sessionID]
}

// Mount mounts a widget for the session. Its callbacks navigate to the
// host's pages.
func (ws *Windows) Mount(sessionID string, variant menu.Variant) (*menu.Widget, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	win, ok := ws.byID[sessionID]
	if !ok {
		win = &window{stream: keyboard.NewStream(), widgets: make(map[string]*mountedWidget)}
		ws.byID[sessionID] = win
	}
	logout := ws.navigate(win, menu.ItemSignOut)

	widget, err := menu.Mount(win.stream, menu.Props{
		Variant: variant,
		Callbacks: menu.Callbacks{
			OnProfileClick:    ws.navigate(win, menu.ItemProfile),
			OnSettingsClick:   ws.navigate(win, menu.ItemSettings),
			OnAppearanceClick: ws.navigate(win, menu.ItemAppearance),
			OnHelpClick:       ws.navigate(win, menu.ItemHelp),
			OnPrivacyClick:    ws.navigate(win, menu.ItemPrivacy),
			OnLogout: func() {
				ws.logger.Info("account menu sign out requested")
				logout()
			},
		},
	})
	if err != nil {
		if !ok {
			delete(ws.byID, sessionID)
		}
		return nil, fmt.Errorf("mount account menu: %w", err)
	}

	win.mu.Lock()
	win.widgets[widget.ID()] = &mountedWidget{widget: widget, lastSeen: ws.now()}
	win.mu.Unlock()

	ws.metrics.Mounted(widget.Props().Variant.String())
	ws.logger.Debug("account menu mounted",
		slog.String("widget_id", widget.ID()),
		slog.String("variant", widget.Props().Variant.String()))
	return widget, nil
}

// Lookup returns a widget mounted by the session and marks it as used.
// Widgets of other sessions are reported as not found.
func (ws *Windows) Lookup(sessionID, widgetID string) (*menu.Widget, error) {
	win := ws.window(sessionID)
	if win == nil {
		return nil, apperrors.NotFoundf("account menu %s not found", widgetID)
	}
	win.mu.Lock()
	defer win.mu.Unlock()
	m, ok := win.widgets[widgetID]
	if !ok {
		return nil, apperrors.NotFoundf("account menu %s not found", widgetID)
	}
	m.lastSeen = ws.now()
	return m.widget, nil
}

// Unmount unmounts one widget. It reports whether the widget was mounted.
func (ws *Windows) Unmount(sessionID, widgetID string) bool {
	win := ws.window(sessionID)
	if win == nil {
		return false
	}
	win.mu.Lock()
	m, ok := win.widgets[widgetID]
	delete(win.widgets, widgetID)
	empty := len(win.widgets) == 0
	win.mu.Unlock()
	if !ok {
		return false
	}

	m.widget.Unmount()
	if empty {
		ws.dropIfEmpty(sessionID, win)
	}
	ws.metrics.Unmounted(metrics.ReasonPage, 1)
	ws.logger.Debug("account menu unmounted", slog.String("widget_id", widgetID))
	return true
}

// UnmountAll unmounts every widget of the session and forgets its window.
func (ws *Windows) UnmountAll(sessionID string) int {
	ws.mu.Lock()
	win, ok := ws.byID[sessionID]
	delete(ws.byID, sessionID)
	ws.mu.Unlock()
	if !ok {
		return 0
	}

	win.mu.Lock()
	widgets := win.widgets
	win.widgets = make(map[string]*mountedWidget)
	win.mu.Unlock()

	for _, m := range widgets {
		m.widget.Unmount()
	}
	ws.metrics.Unmounted(metrics.ReasonLogout, len(widgets))
	return len(widgets)
}

// Dispatch delivers a key event to every widget the session has mounted and
// returns the page a callback navigated to, if any.
func (ws *Windows) Dispatch(sessionID string, e *keyboard.Event) string {
	win := ws.window(sessionID)
	if win == nil {
		return ""
	}
	win.touchAll(ws.now())
	win.stream.Dispatch(e)
	ws.metrics.KeyEvent(e.DefaultPrevented())
	return win.nav.take()
}

// TakeRedirect returns and clears the page a callback of the session's
// widgets navigated to.
func (ws *Windows) TakeRedirect(sessionID string) string {
	win := ws.window(sessionID)
	if win == nil {
		return ""
	}
	return win.nav.take()
}

// Reap unmounts widgets idle for longer than the configured TTL and returns
// how many it unmounted.
func (ws *Windows) Reap(now time.Time) int {
	ws.mu.Lock()
	snapshot := make(map[string]*window, len(ws.byID))
	for id, w := range ws.byID {
		snapshot[id] = w
	}
	ws.mu.Unlock()

	reaped := 0
	for sessionID, win := range snapshot {
		var stale []*menu.Widget
		win.mu.Lock()
		for id, m := range win.widgets {
			if now.Sub(m.lastSeen) >= ws.idleTTL {
				stale = append(stale, m.widget)
				delete(win.widgets, id)
			}
		}
		empty := len(win.widgets) == 0
		win.mu.Unlock()

		for _, w := range stale {
			w.Unmount()
		}
		reaped += len(stale)
		if empty {
			ws.dropIfEmpty(sessionID, win)
		}
	}
	if reaped > 0 {
		ws.metrics.Unmounted(metrics.ReasonIdle, reaped)
		ws.logger.Info("reaped idle account menus", slog.Int("count", reaped))
	}
	return reaped
}

// Mounted returns how many widgets are mounted across all sessions.
func (ws *Windows) Mounted() int {
	ws.mu.Lock()
	wins := make([]*window, 0, len(ws.byID))
	for _, w := range ws.byID {
		wins = append(wins, w)
	}
	ws.mu.Unlock()

	n := 0
	for _, w := range wins {
		w.mu.Lock()
		n += len(w.widgets)
		w.mu.Unlock()
	}
	return n
}

// dropIfEmpty forgets the window if it still has no widgets. A concurrent
// Mount may have repopulated it in the meantime.
func (ws *Windows) dropIfEmpty(sessionID string, win *window) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.byID[sessionID] != win {
		return
	}
	win.mu.Lock()
	defer win.mu.Unlock()
	if len(win.widgets) == 0 {
		delete(ws.byID, sessionID)
	}
}
