package devauth

// Package devauth provides a simple, config-driven LoginProvider for local development.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/mmk-account-menu/internal/domain/auth"
	"github.com/target/mmk-account-menu/internal/ports"
)

var _ ports.LoginProvider = (*Provider)(nil)

// Config controls the dev login identity.
// Name and Email are required; Role defaults to user.
type Config struct {
	Name            string
	Email           string
	Role            domainauth.Role
	AvatarURL       string
	SessionDuration time.Duration // default 8h when zero
}

// Provider signs in the configured identity without any credential check.
// Form overrides for name and email are honored so several identities can be
// tried from one browser.
type Provider struct {
	cfg Config
	now func() time.Time
}

// NewProvider constructs a dev login provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, errors.New("dev auth: Name is required")
	}
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.Role == "" {
		cfg.Role = domainauth.RoleUser
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = 8 * time.Hour
	}
	return &Provider{cfg: cfg, now: time.Now}, nil
}

// Login returns a fresh session for the configured identity.
func (p *Provider) Login(_ context.Context, in ports.LoginInput) (domainauth.Session, error) {
	name := p.cfg.Name
	if v := strings.TrimSpace(in.Name); v != "" {
		name = v
	}
	email := p.cfg.Email
	if v := strings.TrimSpace(in.Email); v != "" {
		email = v
	}

	return domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    strings.ToLower(email),
		Name:      name,
		Email:     email,
		Role:      p.cfg.Role,
		AvatarURL: p.cfg.AvatarURL,
		ExpiresAt: p.now().Add(p.cfg.SessionDuration),
	}, nil
}
