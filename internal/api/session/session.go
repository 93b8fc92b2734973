// Package session associates opaque browser-held tokens with authenticated
// users. A request without a resolvable token is treated as a guest, never as
// an error.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound signals that a token has no live session behind it, either
// because it never existed, was destroyed, or has expired.
var ErrNotFound = errors.New("session not found or expired")

// Identity is the authenticated user snapshot a token resolves to.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Store is the swappable token -> identity mapping. Implementations must be
// safe for concurrent use.
type Store interface {
	// Get resolves a token to its identity, or ErrNotFound.
	Get(ctx context.Context, token string) (*Identity, error)

	// Set binds a token to an identity for the given TTL.
	Set(ctx context.Context, token string, identity Identity, ttl time.Duration) error

	// Destroy removes a session. Destroying an absent token is not an error.
	Destroy(ctx context.Context, token string) error
}
