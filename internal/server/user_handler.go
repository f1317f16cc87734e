package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// UserHandler handles the user-family association endpoint.
type UserHandler struct {
	svc UserService
	log *zerolog.Logger
}

// UserService is the profile slice of the lifecycle service.
type UserService interface {
	AssignFamily(ctx context.Context, familyID, token string) error
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(svc UserService, log *zerolog.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

// AssignFamily associates the submitted family with the authenticated
// user's profile and redirects to the profile page.
func (h *UserHandler) AssignFamily(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	familyID := r.PostFormValue("familyId")

	if err := h.svc.AssignFamily(r.Context(), familyID, sessionToken(r)); err != nil {
		respondError(w, h.log, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
