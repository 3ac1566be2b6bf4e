package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters.

import (
	"context"
	"errors"

	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore implementations for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// LoginInput carries optional overrides submitted on the login form.
type LoginInput struct {
	Name  string
	Email string
}

// LoginProvider signs a user in and returns the session to persist.
type LoginProvider interface {
	Login(ctx context.Context, in LoginInput) (domainauth.Session, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
