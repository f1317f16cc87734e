// Package identity holds the contracts toward the external identity
// provider: session-cookie verification and uid-to-profile lookup.
package identity

import (
	"context"
	"errors"
)

// SessionCookieName is the cookie the session credential is read from.
const SessionCookieName = "__session"

var (
	// ErrUnauthorized is returned for any failed session verification.
	// A missing cookie, a malformed token and an expired token all
	// collapse to this one error so callers cannot tell them apart.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when a uid has no directory entry
	ErrUserNotFound = errors.New("user not found")
)

// Identity is the verified subject of a session credential.
type Identity struct {
	UID   string
	Email string
}

// SessionVerifier validates an opaque session credential.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// UserRecord is the display data the directory holds for a uid.
type UserRecord struct {
	Email       string
	DisplayName string
}

// Directory looks up display data for a user identity.
type Directory interface {
	User(ctx context.Context, uid string) (*UserRecord, error)
}
