package service

import (
	"context"

	"mineral-catalog/internal/domains/auth/model"
)

// AuthService keeps the user table and issues sessions. It is a
// convenience gate for the admin pages, not a security boundary.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.Session, error)
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error

	// Session returns nil without error when token is unknown or expired.
	Session(ctx context.Context, token string) (*model.Session, error)
	IsAdmin(username string) bool
}

// SessionStore persists sessions by token.
type SessionStore interface {
	Save(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
}
