package httpx

import (
	"errors"
	"net/http"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/xraph/forgeui/components/card"
)

// NotFound answers unmatched routes: an HTML page for browsers, JSON otherwise.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if !isBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("not found"),
		})
		return
	}

	writeHTML(w, r, http.StatusNotFound, shell(GetCSRFToken(r), "Page not found", g.Group(nil),
		card.Card(
			card.Header(html.H1(html.Class("text-lg font-semibold"), g.Text("Page not found"))),
			card.Content(
				html.P(html.Class("text-sm text-muted-foreground"), g.Text("The page you're looking for doesn't exist.")),
				html.A(html.Href(PathHome), html.Class("mt-4 inline-block text-sm underline"), g.Text("Back home")),
			),
		),
	))
}

// isBrowserRequest reports whether a plain page navigation made the request.
// htmx swaps and the key bridge expect fragments or JSON instead.
func isBrowserRequest(r *http.Request) bool {
	if IsHTMX(r) || strings.HasPrefix(r.URL.Path, PathStatic) {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
