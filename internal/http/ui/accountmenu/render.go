package accountmenu

import (
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/xraph/forgeui"
	"github.com/xraph/forgeui/components/badge"
	"github.com/xraph/forgeui/components/button"
	"github.com/xraph/forgeui/icons"

	"github.com/target/mmk-account-menu/internal/domain/menu"
	"github.com/target/mmk-account-menu/internal/keyboard"
)

// DefaultBasePath is where the host mounts the widget's HTMX endpoints.
const DefaultBasePath = "/ui/account-menu"

// View is everything a render needs. Platform is read from the current
// request by the caller and never cached in widget state.
type View struct {
	ID       string
	Identity menu.Identity
	Variant  menu.Variant
	State    menu.State
	Platform keyboard.Platform
	BasePath string
}

// ElementID is the DOM id of the widget root, used as the HTMX swap target.
func ElementID(instanceID string) string {
	return "account-menu-" + instanceID
}

func (v View) endpoint(parts ...string) string {
	base := v.BasePath
	if base == "" {
		base = DefaultBasePath
	}
	return strings.TrimRight(base, "/") + "/" + v.ID + "/" + strings.Join(parts, "/")
}

func (v View) hx(path string) g.Node {
	return g.Group([]g.Node{
		g.Attr("hx-post", path),
		g.Attr("hx-target", "#"+ElementID(v.ID)),
		g.Attr("hx-swap", "outerHTML"),
	})
}

// Render draws the whole widget: trigger plus, when open, the dismiss layer
// and the menu panel.
func Render(v View) g.Node {
	layout := LayoutFor(v.Variant)
	open := v.State == menu.StateOpen

	return html.Div(
		html.ID(ElementID(v.ID)),
		html.Class("relative inline-flex"),
		g.Attr("data-account-menu", v.ID),
		g.Attr("data-variant", v.Variant.String()),
		g.Attr("data-state", v.State.String()),
		g.Attr("data-shortcut", "mod+"+menu.SignOutKey),
		g.Attr("data-unmount-url", v.endpoint("unmount")),
		Trigger(v, layout),
		g.If(open, dismissLayer(v)),
		g.If(open, panel(v, layout)),
	)
}

// Trigger draws the always-visible control for the given layout.
func Trigger(v View, layout Layout) g.Node {
	expanded := "false"
	if v.State == menu.StateOpen {
		expanded = "true"
	}

	attrs := button.WithAttrs(
		v.hx(v.endpoint("open")),
		g.Attr("aria-haspopup", "menu"),
		g.Attr("aria-expanded", expanded),
		g.Attr("aria-label", "Open account menu"),
		g.Attr("data-trigger", ""),
	)

	if !layout.TriggerShowsIdentity {
		return button.Button(
			presenceAvatar(v.Identity, layout.TriggerAvatar),
			button.WithVariant(forgeui.VariantGhost),
			button.WithSize(forgeui.SizeIcon),
			button.WithClass("relative rounded-full focus:outline-none"),
			attrs,
		)
	}

	return button.Button(
		g.Group([]g.Node{
			presenceAvatar(v.Identity, layout.TriggerAvatar),
			html.Div(
				html.Class("flex-col ms-3 items-start text-left"),
				html.P(html.Class("text-sm font-medium leading-none"), g.Text(v.Identity.Name)),
				html.P(html.Class("text-xs text-muted-foreground mt-0.5"), g.Text(v.Identity.Role)),
			),
			g.If(layout.TriggerAffordance, chevron("ml-2")),
		}),
		button.WithVariant(forgeui.VariantOutline),
		button.WithClass("flex h-auto p-2 items-center rounded-xl hover:bg-secondary transition-all duration-200 hover:shadow-md focus:outline-none"),
		attrs,
	)
}

func dismissLayer(v View) g.Node {
	return html.Div(
		html.Class("fixed inset-0 z-40"),
		g.Attr("data-dismiss", ""),
		g.Attr("hx-trigger", "click, keyup[key=='Escape'] from:body"),
		v.hx(v.endpoint("dismiss")),
	)
}

func panel(v View, layout Layout) g.Node {
	return html.Div(
		html.Class("absolute right-0 top-full mt-2 z-50 w-72 p-0 rounded-md border bg-popover shadow-md"),
		g.Attr("role", "menu"),
		Header(v.Identity),
		separator(),
		section(v, layout, menu.ItemsOfKind(menu.KindPrimary)),
		separator(),
		section(v, layout, menu.ItemsOfKind(menu.KindInfo)),
		separator(),
		section(v, layout, menu.ItemsOfKind(menu.KindDanger)),
	)
}

// Header draws the identity block at the top of the menu. It is the same for
// both variants.
func Header(id menu.Identity) g.Node {
	return html.Div(
		html.Class("px-4 py-3 bg-linear-to-br from-primary to-primary/90"),
		g.Attr("data-identity", ""),
		html.Div(
			html.Class("flex items-start gap-3"),
			Avatar(id, AvatarLG, "bg-white/20 text-white font-bold backdrop-blur-sm"),
			html.Div(
				html.Class("flex-1 min-w-0"),
				html.P(html.Class("text-sm font-semibold text-white truncate"), g.Text(id.Name)),
				html.P(html.Class("text-xs text-white/80 truncate mt-0.5"), g.Text(id.Email)),
				html.Div(
					html.Class("mt-2"),
					badge.Badge(id.Role, badge.WithVariant(forgeui.VariantSecondary)),
				),
			),
		),
	)
}

func separator() g.Node {
	return html.Div(html.Class("h-px bg-border"), g.Attr("role", "separator"))
}

func section(v View, layout Layout, items []menu.Item) g.Node {
	nodes := make([]g.Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, menuItem(v, layout, it))
	}
	return html.Div(html.Class("p-1.5"), g.Group(nodes))
}

func menuItem(v View, layout Layout, it menu.Item) g.Node {
	var body g.Node
	switch {
	case it.Kind == menu.KindPrimary && layout.ItemStyle == ItemStyleTwoLine:
		body = twoLineBody(it, layout.HoverAffordance)
	case it.Kind == menu.KindDanger:
		body = signOutBody(it, v.Platform)
	default:
		body = singleLineBody(it)
	}

	class := "w-full flex items-center cursor-pointer py-2.5 px-3 rounded-md group text-left hover:bg-accent"
	if it.Kind == menu.KindDanger {
		class = "w-full flex items-center cursor-pointer py-2 px-3 rounded-md text-left text-red-600 dark:text-red-400 hover:bg-red-50 dark:hover:bg-red-950/50"
	}

	return html.Button(
		html.Type("button"),
		html.Class(class),
		g.Attr("role", "menuitem"),
		g.Attr("data-item", string(it.ID)),
		v.hx(v.endpoint("select", string(it.ID))),
		body,
	)
}

func twoLineBody(it menu.Item, hoverChevron bool) g.Node {
	return html.Div(
		html.Class("flex items-center justify-between w-full"),
		html.Div(
			html.Class("flex items-center gap-3"),
			html.Div(
				html.Class("w-8 h-8 rounded-lg bg-primary/10 flex items-center justify-center group-hover:bg-primary/20 transition-colors"),
				itemIcon(it.ID, "text-primary"),
			),
			html.Div(
				html.P(html.Class("text-sm font-medium"), g.Text(it.Title)),
				html.P(html.Class("text-xs text-muted-foreground"), g.Text(it.Description)),
			),
		),
		g.If(hoverChevron, chevron("opacity-0 group-hover:opacity-100 transition-opacity")),
	)
}

func singleLineBody(it menu.Item) g.Node {
	weight := "text-sm font-medium"
	iconClass := "mr-3 text-primary"
	if it.Kind == menu.KindInfo {
		weight = "text-sm"
		iconClass = "mr-3 text-muted-foreground"
	}
	return g.Group([]g.Node{
		itemIcon(it.ID, iconClass),
		html.Span(html.Class(weight), g.Text(it.Title)),
	})
}

func signOutBody(it menu.Item, p keyboard.Platform) g.Node {
	return g.Group([]g.Node{
		itemIcon(it.ID, "mr-3"),
		html.Span(html.Class("text-sm font-medium"), g.Text(it.Title)),
		html.Kbd(
			html.Class("ml-auto inline-flex h-5 items-center gap-1 rounded border bg-muted px-1.5 font-mono text-[10px] font-medium text-muted-foreground"),
			g.Text(keyboard.ShortcutLabel(p, it.Shortcut)),
		),
	})
}

func itemIcon(id menu.ItemID, class string) g.Node {
	switch id {
	case menu.ItemProfile:
		return icons.User(icons.WithSize(16), icons.WithClass(class))
	case menu.ItemSettings:
		return icons.Settings(icons.WithSize(16), icons.WithClass(class))
	case menu.ItemAppearance:
		return icons.Sun(icons.WithSize(16), icons.WithClass(class))
	case menu.ItemHelp:
		return icons.FileQuestionMark(icons.WithSize(16), icons.WithClass(class))
	case menu.ItemPrivacy:
		return icons.Shield(icons.WithSize(16), icons.WithClass(class))
	case menu.ItemSignOut:
		return icons.LogOut(icons.WithSize(16), icons.WithClass(class))
	default:
		return nil
	}
}

func chevron(class string) g.Node {
	return html.Span(
		html.Class("w-4 h-4 text-muted-foreground "+class),
		g.Attr("data-affordance", ""),
		g.Attr("aria-hidden", "true"),
		g.Text("›"),
	)
}
