package menu

import "testing"

func TestChooseAvatar(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantImage bool
	}{
		{name: "empty source", src: "", wantImage: false},
		{name: "blank source", src: "   ", wantImage: false},
		{name: "image source", src: "https://cdn.example.com/ada.png", wantImage: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ChooseAvatar(tt.src, "AL")
			if a.HasImage() != tt.wantImage {
				t.Fatalf("HasImage() = %v, want %v", a.HasImage(), tt.wantImage)
			}
			if !tt.wantImage && a.Initials != "AL" {
				t.Fatalf("Initials = %q, want AL", a.Initials)
			}
			if tt.wantImage && a.Initials != "" {
				t.Fatalf("image avatar must not carry initials: %+v", a)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := map[string]Variant{
		"":        VariantDesktop,
		"desktop": VariantDesktop,
		"mobile":  VariantMobile,
		" Mobile": VariantMobile,
		"tablet":  VariantDesktop,
	}
	for in, want := range tests {
		if got := ParseVariant(in); got != want {
			t.Errorf("ParseVariant(%q) = %q, want %q", in, got, want)
		}
	}
	if Variant("").String() != "desktop" {
		t.Errorf("zero variant should print as desktop")
	}
}

func TestItemsCatalog(t *testing.T) {
	items := Items()
	if len(items) != 6 {
		t.Fatalf("len(Items()) = %d, want 6", len(items))
	}
	if got := len(ItemsOfKind(KindPrimary)); got != 3 {
		t.Fatalf("primary items = %d, want 3", got)
	}
	if got := len(ItemsOfKind(KindInfo)); got != 2 {
		t.Fatalf("info items = %d, want 2", got)
	}
	signOut, ok := LookupItem(ItemSignOut)
	if !ok || signOut.Shortcut != SignOutKey || signOut.Kind != KindDanger {
		t.Fatalf("unexpected sign-out item: %+v", signOut)
	}
	items[0].Title = "mutated"
	if first, _ := LookupItem(ItemProfile); first.Title != "My Profile" {
		t.Fatalf("Items() must return a copy")
	}
}
