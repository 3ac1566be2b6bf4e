package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
	"github.com/target/mmk-account-menu/internal/ports"
)

// AuthHandlers provides HTTP handlers for signing in and out.
type AuthHandlers struct {
	Provider     ports.LoginProvider
	Sessions     ports.SessionStore
	Windows      *Windows
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginForm renders the dev sign-in form.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFromRequest(r, h.Sessions); sess != nil {
		http.Redirect(w, r, safeRedirectPath(r.URL.Query().Get("redirect_uri")), http.StatusSeeOther)
		return
	}
	writeHTML(w, r, http.StatusOK, loginPage(safeRedirectPath(r.URL.Query().Get("redirect_uri")), GetCSRFToken(r)))
}

// Login creates a session and sets the session cookie.
// POST /auth/login (form: name, email, redirect_uri).
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	sess, err := h.Provider.Login(r.Context(), ports.LoginInput{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}
	if err := h.Sessions.Save(r.Context(), sess); err != nil {
		h.logger().ErrorContext(r.Context(), "save session failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.logger().InfoContext(r.Context(), "signed in", slog.String("user_id", sess.UserID))
	h.setSessionCookie(w, r, sess)
	http.Redirect(w, r, safeRedirectPath(r.PostFormValue("redirect_uri")), http.StatusSeeOther)
}

// Logout ends the session, unmounts its widgets and clears the cookie.
// GET /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		n := h.Windows.UnmountAll(c.Value)
		if err := h.Sessions.Delete(r.Context(), c.Value); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
		h.logger().InfoContext(r.Context(), "signed out", slog.Int("unmounted", n))
	}

	h.clearCookie(w, r, sessionCookieName)
	redirect(w, r, PathLogin)
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors the attributes used when setting it so browsers match the deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// safeRedirectPath allows only relative, rooted paths.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}
