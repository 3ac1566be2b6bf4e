package auth

// Package auth contains domain-level types for host sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/target/mmk-account-menu/internal/domain/menu"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Label returns the display form used in badges ("Admin", "User", ...).
func (r Role) Label() string {
	s := string(r)
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

// Session is the server-side record we persist for a signed-in user.
// ID is an opaque session identifier.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Initials derives up to two letters from the first and last words of Name,
// falling back to the email's first letter.
func (s Session) Initials() string {
	words := strings.Fields(s.Name)
	var out []rune
	switch len(words) {
	case 0:
		if r, _ := utf8.DecodeRuneInString(s.Email); r != utf8.RuneError {
			out = append(out, r)
		}
	case 1:
		r, _ := utf8.DecodeRuneInString(words[0])
		out = append(out, r)
	default:
		first, _ := utf8.DecodeRuneInString(words[0])
		last, _ := utf8.DecodeRuneInString(words[len(words)-1])
		out = append(out, first, last)
	}
	return strings.ToUpper(string(out))
}

// Identity projects the session onto the account menu's identity summary.
func (s Session) Identity() menu.Identity {
	return menu.Identity{
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role.Label(),
		Initials:  s.Initials(),
		AvatarURL: s.AvatarURL,
	}
}
