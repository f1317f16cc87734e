package identity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVerifyRoundTrip(t *testing.T) {
	verifier := NewCookieVerifier("test-secret")

	token, err := verifier.Mint("u1", "u1@example.com", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	ident, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ident.UID != "u1" || ident.Email != "u1@example.com" {
		t.Errorf("ident = %+v", ident)
	}
}

func TestVerifyFailures(t *testing.T) {
	verifier := NewCookieVerifier("test-secret")

	expired, err := verifier.Mint("u1", "u1@example.com", -time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	otherSecret, err := NewCookieVerifier("other-secret").Mint("u1", "", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", expired},
		{"wrong secret", otherSecret},
	}

	// Every failure mode collapses to the same error.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(context.Background(), tt.token)
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestVerifyRequiresSubject(t *testing.T) {
	verifier := NewCookieVerifier("test-secret")

	token, err := verifier.Mint("", "u1@example.com", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized for empty subject", err)
	}
}
