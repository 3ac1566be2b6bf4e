package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	g "maragu.dev/gomponents"

	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
	"github.com/target/mmk-account-menu/internal/domain/menu"
	apperrors "github.com/target/mmk-account-menu/internal/errors"
	"github.com/target/mmk-account-menu/internal/http/ui/accountmenu"
	"github.com/target/mmk-account-menu/internal/keyboard"
)

// MenuHandlers serves the account menu's htmx endpoints and the key bridge.
type MenuHandlers struct {
	Windows  *Windows
	BasePath string
	Logger   *slog.Logger
}

func (h *MenuHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// View builds the render input for widget from the current request. The
// identity and platform are read fresh on every call.
func (h *MenuHandlers) View(r *http.Request, sess *domainauth.Session, widget *menu.Widget) accountmenu.View {
	return accountmenu.View{
		ID:       widget.ID(),
		Identity: sess.Identity(),
		Variant:  widget.Props().Variant,
		State:    widget.Controller().State(),
		Platform: requestPlatform(r),
		BasePath: h.BasePath,
	}
}

func requestPlatform(r *http.Request) keyboard.Platform {
	return keyboard.DetectPlatform(r.UserAgent(), r.Header.Get("Sec-CH-UA-Platform"))
}

// Open activates the trigger.
// POST {base}/{id}/open.
func (h *MenuHandlers) Open(w http.ResponseWriter, r *http.Request) {
	h.withWidget(w, r, func(_ *domainauth.Session, widget *menu.Widget) error {
		widget.Controller().Activate()
		return nil
	})
}

// Dismiss closes the menu without selecting anything.
// POST {base}/{id}/dismiss.
func (h *MenuHandlers) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.withWidget(w, r, func(_ *domainauth.Session, widget *menu.Widget) error {
		widget.Controller().Dismiss()
		return nil
	})
}

// Select runs the item's action and closes the menu. The response fires an
// account-menu:selected event for the host page and, when the action
// navigated, carries Hx-Redirect alongside the closed fragment.
// POST {base}/{id}/select/{item}.
func (h *MenuHandlers) Select(w http.ResponseWriter, r *http.Request) {
	item := menu.ItemID(r.PathValue("item"))
	h.withWidget(w, r, func(sess *domainauth.Session, widget *menu.Widget) error {
		invoked, err := widget.Controller().Select(item)
		switch {
		case errors.Is(err, menu.ErrMenuClosed):
			return apperrors.Wrap(err, apperrors.ErrCodeConflict, "select "+string(item))
		case errors.Is(err, menu.ErrUnknownItem), errors.Is(err, menu.ErrUnmounted):
			return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "select "+string(item))
		case err != nil:
			return err
		}

		h.Windows.RecordSelection(item)
		h.logger().DebugContext(r.Context(), "account menu item selected",
			slog.String("widget_id", widget.ID()),
			slog.String("item", string(item)),
			slog.Bool("invoked", invoked))
		SetHXTrigger(w, "account-menu:selected", map[string]any{
			"id":      widget.ID(),
			"item":    string(item),
			"invoked": invoked,
		})
		if target := h.Windows.TakeRedirect(sess.ID); target != "" {
			SetHXRedirect(w, target)
		}
		return nil
	})
}

// Unmount releases the widget. Browsers call it with sendBeacon on pagehide.
// POST {base}/{id}/unmount.
func (h *MenuHandlers) Unmount(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.Unauthorized("authentication required"))
		return
	}
	h.Windows.Unmount(sess.ID, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

type keysResponse struct {
	DefaultPrevented bool   `json:"defaultPrevented"`
	Redirect         string `json:"redirect,omitempty"`
}

// Keys feeds a browser keydown into the session's window stream.
// POST /ui/keys with {"key": "q", "meta": true, ...}.
func (h *MenuHandlers) Keys(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.Unauthorized("authentication required"))
		return
	}

	var e keyboard.Event
	if !DecodeJSON(w, r, &e) {
		return
	}
	if strings.TrimSpace(e.Key) == "" {
		WriteAppError(w, apperrors.ValidationField("key", "key is required"))
		return
	}

	target := h.Windows.Dispatch(sess.ID, &e)
	if e.DefaultPrevented() {
		h.logger().DebugContext(r.Context(), "shortcut dispatched", slog.String("key", e.Key))
	}
	WriteJSON(w, http.StatusOK, keysResponse{DefaultPrevented: e.DefaultPrevented(), Redirect: target})
}

// withWidget resolves the session and widget named by the request, runs fn
// and answers with the re-rendered widget.
func (h *MenuHandlers) withWidget(
	w http.ResponseWriter,
	r *http.Request,
	fn func(*domainauth.Session, *menu.Widget) error,
) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.Unauthorized("authentication required"))
		return
	}
	widget, err := h.Windows.Lookup(sess.ID, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if err := fn(sess, widget); err != nil {
		h.logger().WarnContext(r.Context(), "account menu request failed",
			slog.String("widget_id", widget.ID()),
			slog.String("error", err.Error()))
		WriteAppError(w, err)
		return
	}
	writeHTML(w, r, http.StatusOK, accountmenu.Render(h.View(r, sess, widget)))
}

// writeHTML renders node as the response body.
func writeHTML(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		slog.Default().DebugContext(r.Context(), "render html response",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
}
