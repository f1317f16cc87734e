package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieVerifier verifies HS256-signed session cookies.
type CookieVerifier struct {
	secret []byte
}

// NewCookieVerifier creates a verifier for session cookies signed with
// the given shared secret.
func NewCookieVerifier(secret string) *CookieVerifier {
	return &CookieVerifier{secret: []byte(secret)}
}

// Verify parses and validates the session token. Every failure mode
// maps to ErrUnauthorized.
func (v *CookieVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, ErrUnauthorized
	}
	email, _ := claims["email"].(string)

	return &Identity{UID: uid, Email: email}, nil
}

// Mint issues a session cookie value for the given identity. The login
// flow and tests use it; the booking core only ever verifies.
func (v *CookieVerifier) Mint(uid, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
