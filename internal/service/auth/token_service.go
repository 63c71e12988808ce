// Package auth implements the credential capabilities of the service:
// bearer-token issue/verify and password digest derivation. Both are
// constructed from injected configuration; nothing in here reaches for
// ambient globals.
package auth

import (
	"context"
	"time"
)

// Claims carries the verified identity of a caller, decoupled from the
// token library's claim types.
type Claims struct {
	UserID    int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// Issue creates a signed token embedding the user's identity.
	Issue(ctx context.Context, userID int64, email string) (string, error)

	// Verify checks a token and returns its claims. Every failure mode
	// (expired, malformed, bad signature, wrong algorithm) returns
	// ErrInvalidToken; callers cannot and must not distinguish them.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}
