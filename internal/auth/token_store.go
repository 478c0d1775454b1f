package auth

import (
	"context"
	"errors"
)

// TokenStore issues and resolves opaque bearer tokens for logged-in users.
type TokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)

	// Resolve returns the user id a token was issued to, or
	// ErrTokenNotFound for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (string, error)

	Revoke(ctx context.Context, token string) error
}

var ErrTokenNotFound = errors.New("auth token not found")
