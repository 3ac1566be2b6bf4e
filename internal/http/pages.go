package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/xraph/forgeui"
	"github.com/xraph/forgeui/components/button"
	"github.com/xraph/forgeui/components/card"
	"github.com/xraph/forgeui/theme"

	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
	"github.com/target/mmk-account-menu/internal/domain/menu"
	"github.com/target/mmk-account-menu/internal/http/ui/accountmenu"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// PageHandlers serves the host pages that embed the account menu.
type PageHandlers struct {
	Menu *MenuHandlers
	// DefaultVariant is the layout of the header menu on content pages.
	DefaultVariant menu.Variant
}

// Home shows the header menu and the mobile bar menu side by side. Both
// listen on the same window stream, so the sign-out shortcut reaches both.
// GET /.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		redirect(w, r, PathLogin)
		return
	}

	desktop, err := h.mount(r, sess, menu.VariantDesktop)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	mobile, err := h.mount(r, sess, menu.VariantMobile)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeHTML(w, r, http.StatusOK, shell(GetCSRFToken(r), "Home", desktop,
		card.Card(
			card.Header(html.H1(html.Class("text-lg font-semibold"), g.Textf("Welcome back, %s", sess.Name))),
			card.Content(
				html.P(html.Class("text-sm text-muted-foreground"),
					g.Text("Open the account menu from the header or the mobile bar, or press the sign-out shortcut anywhere on the page.")),
			),
		),
		html.Nav(
			html.Class("fixed inset-x-0 bottom-0 flex justify-end border-t bg-background p-2 md:hidden"),
			g.Attr("aria-label", "Mobile account bar"),
			mobile,
		),
	))
}

// Info returns a handler for a simple content page the menu links to.
func (h *PageHandlers) Info(title, blurb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetUserSessionFromContext(r.Context())
		if !ok {
			redirect(w, r, PathLogin)
			return
		}
		header, err := h.mount(r, sess, h.DefaultVariant)
		if err != nil {
			WriteAppError(w, err)
			return
		}
		writeHTML(w, r, http.StatusOK, shell(GetCSRFToken(r), title, header,
			card.Card(
				card.Header(html.H1(html.Class("text-lg font-semibold"), g.Text(title))),
				card.Content(
					html.P(html.Class("text-sm text-muted-foreground"), g.Text(blurb)),
					html.A(html.Href(PathHome), html.Class("mt-4 inline-block text-sm underline"), g.Text("Back home")),
				),
			),
		))
	}
}

func (h *PageHandlers) mount(r *http.Request, sess *domainauth.Session, variant menu.Variant) (g.Node, error) {
	widget, err := h.Menu.Windows.Mount(sess.ID, variant)
	if err != nil {
		h.Menu.logger().ErrorContext(r.Context(), "mount account menu failed", slog.String("error", err.Error()))
		return nil, err
	}
	return accountmenu.Render(h.Menu.View(r, sess, widget)), nil
}

// shell is the page chrome: theme, htmx, the key bridge and a header that
// hosts the account menu. htmx requests pick the CSRF token up from the body's
// hx-headers; the key bridge reads the meta tag.
func shell(csrfToken, title string, accountMenu g.Node, main ...g.Node) g.Node {
	light, dark := theme.DefaultLight(), theme.DefaultDark()
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				theme.HeadContent(light, dark),
				html.Meta(html.Name("csrf-token"), html.Content(csrfToken)),
				html.TitleEl(g.Text(title+" · Account")),
				html.Script(html.Src("https://cdn.tailwindcss.com")),
				theme.TailwindConfigScript(),
				theme.StyleTag(light, dark),
				html.Script(html.Src(htmxSrc)),
				html.Script(html.Src(PathStatic+"js/account-menu.js"), html.Defer()),
			),
			html.Body(
				html.Class("min-h-screen bg-background text-foreground antialiased"),
				g.Attr("hx-headers", csrfHeaders(csrfToken)),
				html.Header(
					html.Class("flex items-center justify-between border-b px-6 py-3"),
					html.A(html.Href(PathHome), html.Class("font-semibold"), g.Text("Account")),
					accountMenu,
				),
				html.Main(html.Class("container space-y-6 py-6 pb-20"), g.Group(main)),
			),
		),
	)
}

func csrfHeaders(token string) string {
	b, _ := json.Marshal(map[string]string{DefaultCSRFHeaderName: token})
	return string(b)
}

func loginPage(redirectTo, csrfToken string) g.Node {
	light, dark := theme.DefaultLight(), theme.DefaultDark()
	field := func(name, label, kind string) g.Node {
		return html.Label(
			html.Class("block space-y-1 text-sm"),
			html.Span(g.Text(label)),
			html.Input(
				html.Type(kind),
				html.Name(name),
				html.Class("w-full rounded-md border bg-background px-3 py-2"),
				html.Placeholder("Leave blank for the configured default"),
			),
		)
	}

	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				theme.HeadContent(light, dark),
				html.TitleEl(g.Text("Sign in · Account")),
				html.Script(html.Src("https://cdn.tailwindcss.com")),
				theme.TailwindConfigScript(),
				theme.StyleTag(light, dark),
			),
			html.Body(
				html.Class("flex min-h-screen items-center justify-center bg-background text-foreground"),
				card.Card(
					card.Header(html.H1(html.Class("text-lg font-semibold"), g.Text("Sign in"))),
					card.Content(
						html.Form(
							html.Method("post"),
							html.Action(PathLogin),
							html.Class("w-80 space-y-4"),
							html.Input(html.Type("hidden"), html.Name("redirect_uri"), html.Value(redirectTo)),
							html.Input(html.Type("hidden"), html.Name(DefaultCSRFCookieName), html.Value(csrfToken)),
							field("name", "Name", "text"),
							field("email", "Email", "email"),
							button.Button(
								g.Text("Sign in"),
								button.WithVariant(forgeui.VariantDefault),
								button.WithClass("w-full"),
								button.WithAttrs(html.Type("submit")),
							),
						),
					),
				),
			),
		),
	)
}
