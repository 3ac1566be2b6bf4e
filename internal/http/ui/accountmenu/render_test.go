package accountmenu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/target/mmk-account-menu/internal/domain/menu"
	"github.com/target/mmk-account-menu/internal/keyboard"
)

var ada = menu.Identity{
	Name:     "Ada Lovelace",
	Email:    "ada@example.com",
	Role:     "Admin",
	Initials: "AL",
}

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func view(variant menu.Variant, state menu.State) View {
	return View{ID: "w1", Identity: ada, Variant: variant, State: state}
}

func TestLayoutFor(t *testing.T) {
	desktop := LayoutFor(menu.VariantDesktop)
	assert.True(t, desktop.TriggerShowsIdentity)
	assert.True(t, desktop.TriggerAffordance)
	assert.True(t, desktop.HoverAffordance)
	assert.Equal(t, ItemStyleTwoLine, desktop.ItemStyle)

	mobile := LayoutFor(menu.VariantMobile)
	assert.False(t, mobile.TriggerShowsIdentity)
	assert.False(t, mobile.TriggerAffordance)
	assert.False(t, mobile.HoverAffordance)
	assert.Equal(t, ItemStyleSingleLine, mobile.ItemStyle)

	assert.Equal(t, desktop, LayoutFor(""), "unspecified variant renders as desktop")
}

func TestTrigger_VariantText(t *testing.T) {
	desktop := render(t, Trigger(view(menu.VariantDesktop, menu.StateClosed), LayoutFor(menu.VariantDesktop)))
	assert.Contains(t, desktop, "Ada Lovelace")
	assert.Contains(t, desktop, "Admin")
	assert.Contains(t, desktop, "data-affordance")

	mobile := render(t, Trigger(view(menu.VariantMobile, menu.StateClosed), LayoutFor(menu.VariantMobile)))
	assert.NotContains(t, mobile, "Ada Lovelace")
	assert.NotContains(t, mobile, "Admin")
	assert.NotContains(t, mobile, "data-affordance")
	assert.Contains(t, mobile, ">AL<")
}

func TestRender_ClosedHidesPanel(t *testing.T) {
	out := render(t, Render(view(menu.VariantDesktop, menu.StateClosed)))
	assert.Contains(t, out, `id="account-menu-w1"`)
	assert.Contains(t, out, `data-state="closed"`)
	assert.Contains(t, out, `hx-post="/ui/account-menu/w1/open"`)
	assert.Contains(t, out, `aria-expanded="false"`)
	assert.NotContains(t, out, `role="menu"`)
	assert.NotContains(t, out, "ada@example.com")
}

func TestRender_OpenDesktop(t *testing.T) {
	out := render(t, Render(view(menu.VariantDesktop, menu.StateOpen)))

	assert.Contains(t, out, `data-state="open"`)
	assert.Contains(t, out, `aria-expanded="true"`)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "View and edit profile")
	assert.Contains(t, out, "Manage preferences")
	assert.Contains(t, out, "Theme and display")
	assert.Contains(t, out, "Help &amp; Support")
	assert.Contains(t, out, "Privacy &amp; Security")
	assert.Contains(t, out, `hx-post="/ui/account-menu/w1/select/settings"`)
	assert.Contains(t, out, `hx-post="/ui/account-menu/w1/dismiss"`)
	assert.Contains(t, out, "Ctrl+Q")
}

func TestRender_OpenMobileUsesSingleLineItems(t *testing.T) {
	out := render(t, Render(view(menu.VariantMobile, menu.StateOpen)))

	assert.Contains(t, out, "My Profile")
	assert.NotContains(t, out, "View and edit profile")
	assert.NotContains(t, out, "data-affordance")
	// Header, informational items and sign-out do not depend on the variant.
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Help &amp; Support")
	assert.Contains(t, out, `data-item="sign-out"`)
}

func TestRender_ShortcutHintFollowsPlatform(t *testing.T) {
	v := view(menu.VariantDesktop, menu.StateOpen)
	v.Platform = keyboard.PlatformMac
	out := render(t, Render(v))
	assert.Contains(t, out, "⌘Q")
	assert.NotContains(t, out, "Ctrl+Q")
}

func TestRender_CustomBasePath(t *testing.T) {
	v := view(menu.VariantMobile, menu.StateClosed)
	v.BasePath = "/widgets/menu/"
	out := render(t, Render(v))
	assert.Contains(t, out, `hx-post="/widgets/menu/w1/open"`)
	assert.Contains(t, out, `data-unmount-url="/widgets/menu/w1/unmount"`)
}

func TestAvatar_Fallback(t *testing.T) {
	out := render(t, Avatar(ada, AvatarSM, ""))
	assert.Contains(t, out, `data-avatar="initials"`)
	assert.Contains(t, out, ">AL<")
	assert.NotContains(t, out, "<img")

	withImage := ada
	withImage.AvatarURL = "https://cdn.example.com/ada.png"
	out = render(t, Avatar(withImage, AvatarSM, ""))
	assert.Contains(t, out, `<img`)
	assert.Contains(t, out, `src="https://cdn.example.com/ada.png"`)
	assert.NotContains(t, out, ">AL<")
}

func TestHeader(t *testing.T) {
	out := render(t, Header(ada))
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Admin")
}
