package accountmenu

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/target/mmk-account-menu/internal/domain/menu"
)

// Avatar renders the identity's image, or its initials when no image source
// is available. Never both.
func Avatar(id menu.Identity, size AvatarSize, fallbackClass string) g.Node {
	a := id.Avatar()
	if a.HasImage() {
		return html.Img(
			html.Class("rounded-full object-cover shrink-0 "+size.class()),
			html.Src(a.Image),
			html.Alt(""),
			g.Attr("data-avatar", "image"),
		)
	}
	return html.Span(
		html.Class("rounded-full shrink-0 flex items-center justify-center "+size.class()+" "+fallbackClass),
		g.Attr("data-avatar", "initials"),
		g.Attr("aria-hidden", "true"),
		g.Text(a.Initials),
	)
}

// presenceAvatar wraps the trigger avatar with the online indicator.
func presenceAvatar(id menu.Identity, size AvatarSize) g.Node {
	return html.Div(
		html.Class("relative flex rounded-full"),
		Avatar(id, size, "bg-linear-to-br from-primary to-primary/80 text-white font-semibold text-sm"),
		html.Span(html.Class("absolute -bottom-0.5 -right-0.5 w-3 h-3 bg-green-500 rounded-full border-2 border-background")),
	)
}
