package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dbertella/bbs/internal/identity"
	"github.com/dbertella/bbs/internal/models"
	"github.com/dbertella/bbs/internal/repository"
)

type fakeVerifier struct {
	ident *identity.Identity
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ident, nil
}

// spyBookingRepo records store access so tests can assert the guard
// never touches the store for unauthenticated callers.
type spyBookingRepo struct {
	repository.BookingRepository
	booking *models.Booking
	getErr  error
	gets    int
}

func (s *spyBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.booking, nil
}

func TestAuthorizeMutationUnauthorizedBeforeStore(t *testing.T) {
	repo := &spyBookingRepo{}
	guard := NewGuard(&fakeVerifier{err: identity.ErrUnauthorized}, repo)

	_, err := guard.AuthorizeMutation(context.Background(), "b1", "")
	if !errors.Is(err, identity.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if repo.gets != 0 {
		t.Errorf("store was accessed %d times before auth", repo.gets)
	}
}

// Any verifier failure collapses to the same unauthorized error so the
// caller cannot distinguish a missing cookie from a rejected one.
func TestAuthorizeMutationCollapsesVerifierErrors(t *testing.T) {
	guard := NewGuard(&fakeVerifier{err: errors.New("token expired at 2024-01-01")}, &spyBookingRepo{})

	_, err := guard.AuthorizeMutation(context.Background(), "b1", "stale")
	if !errors.Is(err, identity.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestAuthorizeMutationNotFound(t *testing.T) {
	repo := &spyBookingRepo{getErr: repository.ErrBookingNotFound}
	guard := NewGuard(&fakeVerifier{ident: &identity.Identity{UID: "u1"}}, repo)

	_, err := guard.AuthorizeMutation(context.Background(), "missing", "tok")
	if !errors.Is(err, repository.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestAuthorizeMutationForbiddenForNonOwner(t *testing.T) {
	repo := &spyBookingRepo{booking: &models.Booking{ID: "b1", UserID: "u1"}}
	guard := NewGuard(&fakeVerifier{ident: &identity.Identity{UID: "u2"}}, repo)

	_, err := guard.AuthorizeMutation(context.Background(), "b1", "tok")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestAuthorizeMutationAllowsOwner(t *testing.T) {
	repo := &spyBookingRepo{booking: &models.Booking{ID: "b1", UserID: "u1"}}
	guard := NewGuard(&fakeVerifier{ident: &identity.Identity{UID: "u1", Email: "u1@example.com"}}, repo)

	ident, err := guard.AuthorizeMutation(context.Background(), "b1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UID != "u1" {
		t.Errorf("ident.UID = %q, want u1", ident.UID)
	}
}

func TestAuthorizeCreateSkipsOwnershipCheck(t *testing.T) {
	repo := &spyBookingRepo{}
	guard := NewGuard(&fakeVerifier{ident: &identity.Identity{UID: "u1"}}, repo)

	ident, err := guard.AuthorizeCreate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UID != "u1" {
		t.Errorf("ident.UID = %q, want u1", ident.UID)
	}
	if repo.gets != 0 {
		t.Errorf("create authorization read the store %d times", repo.gets)
	}
}
