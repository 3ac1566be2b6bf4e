package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
	"github.com/target/mmk-account-menu/internal/domain/menu"
	"github.com/target/mmk-account-menu/internal/mocks"
	"github.com/target/mmk-account-menu/internal/observability/metrics"
	"github.com/target/mmk-account-menu/internal/ports"
)

const (
	testSessionID = "sess-1"
	testCSRFToken = "csrf-test-token"
)

type routerFixture struct {
	handler  http.Handler
	metrics  *metrics.Menu
	windows  *Windows
	sessions *mocks.MockSessionStore
	login    *mocks.MockLoginProvider
}

func testSession() domainauth.Session {
	return domainauth.Session{
		ID:        testSessionID,
		UserID:    "ada@example.com",
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionStore(ctrl)
	login := mocks.NewMockLoginProvider(ctrl)

	sessions.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (domainauth.Session, error) {
			if id == testSessionID {
				return testSession(), nil
			}
			return domainauth.Session{}, ports.ErrSessionNotFound
		}).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewMenu(metrics.MenuOptions{})
	windows := NewWindows(WindowsOptions{IdleTTL: time.Minute, Logger: logger, Metrics: recorder})
	handler := NewRouter(RouterServices{
		Metrics:        recorder.Handler(),
		Sessions:       sessions,
		Login:          login,
		Windows:        windows,
		DefaultVariant: menu.VariantDesktop,
		Logger:         logger,
	})
	return &routerFixture{handler: handler, metrics: recorder, windows: windows, sessions: sessions, login: login}
}

func (f *routerFixture) do(t *testing.T, method, target string, body io.Reader, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Hx-Request", "true")
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	if signedIn {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) mount(t *testing.T, v menu.Variant) *menu.Widget {
	t.Helper()
	w, err := f.windows.Mount(testSessionID, v)
	require.NoError(t, err)
	return w
}

func decodeKeys(t *testing.T, rec *httptest.ResponseRecorder) keysResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp keysResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHome_RedirectsToLoginWithoutSession(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathLogin, rec.Header().Get("Location"))
}

func TestHome_MountsDesktopAndMobileMenus(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "data-account-menu="))
	assert.Contains(t, body, `data-variant="desktop"`)
	assert.Contains(t, body, `data-variant="mobile"`)
	assert.Contains(t, body, "/static/js/account-menu.js")
	assert.Equal(t, 2, f.windows.Mounted())
}

func TestMenu_OpenThenSelectRedirects(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantDesktop)
	base := "/ui/account-menu/" + w.ID()

	rec := f.do(t, http.MethodPost, base+"/open", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-state="open"`)
	assert.Contains(t, rec.Body.String(), "ada@example.com")

	rec = f.do(t, http.MethodPost, base+"/select/settings", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-state="closed"`)
	assert.Equal(t, PathSettings, rec.Header().Get("Hx-Redirect"))
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), `"item":"settings"`)
	assert.Equal(t, menu.StateClosed, w.Controller().State())
}

func TestMenu_Dismiss(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantMobile)
	w.Controller().Activate()

	rec := f.do(t, http.MethodPost, "/ui/account-menu/"+w.ID()+"/dismiss", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-state="closed"`)
	assert.Empty(t, rec.Header().Get("Hx-Redirect"))
}

func TestMenu_SelectErrors(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantDesktop)
	base := "/ui/account-menu/" + w.ID()

	rec := f.do(t, http.MethodPost, base+"/select/profile", nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code, "selecting while closed")

	w.Controller().Activate()
	rec = f.do(t, http.MethodPost, base+"/select/billing", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code, "unknown item")
	assert.Equal(t, menu.StateOpen, w.Controller().State())

	rec = f.do(t, http.MethodPost, "/ui/account-menu/nope/open", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code, "unknown widget")
}

func TestMenu_RequiresSession(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantDesktop)

	rec := f.do(t, http.MethodPost, "/ui/account-menu/"+w.ID()+"/open", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, menu.StateClosed, w.Controller().State())
}

func TestKeys_SignOutShortcut(t *testing.T) {
	f := newRouterFixture(t)
	f.mount(t, menu.VariantDesktop)
	f.mount(t, menu.VariantMobile)

	rec := f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":"q","ctrl":true}`), true)
	resp := decodeKeys(t, rec)
	assert.True(t, resp.DefaultPrevented)
	assert.Equal(t, PathLogout, resp.Redirect)
}

func TestKeys_OtherChordsPassThrough(t *testing.T) {
	f := newRouterFixture(t)
	f.mount(t, menu.VariantDesktop)

	for _, body := range []string{`{"key":"q"}`, `{"key":"q","alt":true}`, `{"key":"w","meta":true}`} {
		resp := decodeKeys(t, f.do(t, http.MethodPost, PathKeys, strings.NewReader(body), true))
		assert.False(t, resp.DefaultPrevented, body)
		assert.Empty(t, resp.Redirect, body)
	}
}

func TestKeys_UnmountedWidgetsReceiveNothing(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantDesktop)

	rec := f.do(t, http.MethodPost, "/ui/account-menu/"+w.ID()+"/unmount", nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	resp := decodeKeys(t, f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":"Q","meta":true}`), true))
	assert.False(t, resp.DefaultPrevented)
	assert.Empty(t, resp.Redirect)
}

func TestKeys_RejectsBadInput(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":""}`), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":"q","hyper":true}`), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":"q","ctrl":true}`), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMenu_RejectsMissingCSRFToken(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantDesktop)

	req := httptest.NewRequest(http.MethodPost, "/ui/account-menu/"+w.ID()+"/open", nil)
	req.Header.Set("Hx-Request", "true")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, menu.StateClosed, w.Controller().State())
}

func TestAuth_LoginCreatesSession(t *testing.T) {
	f := newRouterFixture(t)
	sess := testSession()
	f.login.EXPECT().
		Login(gomock.Any(), ports.LoginInput{Name: "Grace Hopper", Email: ""}).
		Return(sess, nil)
	f.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil)

	form := url.Values{"name": {"Grace Hopper"}, "redirect_uri": {"/settings"}, DefaultCSRFCookieName: {testCSRFToken}}
	req := httptest.NewRequest(http.MethodPost, PathLogin, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/settings", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Equal(t, testSessionID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuth_LoginRejectsOffsiteRedirect(t *testing.T) {
	f := newRouterFixture(t)
	f.login.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testSession(), nil)
	f.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	form := url.Values{"redirect_uri": {"https://evil.example.com/"}, DefaultCSRFCookieName: {testCSRFToken}}
	req := httptest.NewRequest(http.MethodPost, PathLogin, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestAuth_LogoutUnmountsAndDeletesSession(t *testing.T) {
	f := newRouterFixture(t)
	a := f.mount(t, menu.VariantDesktop)
	b := f.mount(t, menu.VariantMobile)
	f.sessions.EXPECT().Delete(gomock.Any(), testSessionID).Return(nil)

	req := httptest.NewRequest(http.MethodGet, PathLogout, nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathLogin, rec.Header().Get("Location"))
	assert.False(t, a.Mounted())
	assert.False(t, b.Mounted())
	assert.Zero(t, f.windows.Mounted())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t)
	f.mount(t, menu.VariantDesktop)

	req := httptest.NewRequest(http.MethodGet, PathHealth, nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","mounted_widgets":1}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodHead, PathHealth, nil)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestStaticServesKeyBridge(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodGet, PathStatic+"js/account-menu.js", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sendBeacon")
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestNotFound(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = f.do(t, http.MethodGet, "/no-such-page", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func TestMetrics_RecordsMenuActivity(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantMobile)
	base := "/ui/account-menu/" + w.ID()

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, base+"/open", nil, true).Code)
	f.do(t, http.MethodPost, base+"/select/help", nil, true)
	f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":"x","ctrl":true}`), true)

	rec := f.do(t, http.MethodGet, PathMetrics, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `accountmenu_widget_mounts_total{variant="mobile"} 1`)
	assert.Contains(t, body, `accountmenu_item_selections_total{item="help"} 1`)
	assert.Contains(t, body, `accountmenu_key_events_total{handled="false"} 1`)
}

func TestMetrics_ShortcutIsNotCountedAsSelection(t *testing.T) {
	f := newRouterFixture(t)
	f.mount(t, menu.VariantDesktop)
	f.mount(t, menu.VariantMobile)

	resp := decodeKeys(t, f.do(t, http.MethodPost, PathKeys, strings.NewReader(`{"key":"q","ctrl":true}`), true))
	require.True(t, resp.DefaultPrevented)

	body := f.do(t, http.MethodGet, PathMetrics, nil, false).Body.String()
	assert.Contains(t, body, `accountmenu_key_events_total{handled="true"} 1`)
	assert.NotContains(t, body, `accountmenu_item_selections_total{item="sign-out"}`)
}

func TestMenu_SelectOnUnmountedWidget(t *testing.T) {
	f := newRouterFixture(t)
	w := f.mount(t, menu.VariantDesktop)
	w.Controller().Activate()
	w.Unmount()

	rec := f.do(t, http.MethodPost, "/ui/account-menu/"+w.ID()+"/select/settings", nil, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Hx-Redirect"))
	assert.Empty(t, f.windows.TakeRedirect(testSessionID))
}
