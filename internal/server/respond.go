package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dbertella/bbs/internal/auth"
	"github.com/dbertella/bbs/internal/identity"
	"github.com/dbertella/bbs/internal/repository"
	"github.com/dbertella/bbs/internal/service"
	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError sends a JSON error response with the given status code and message
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithJSON sends a JSON response with the given status code and payload
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// sessionToken extracts the session credential from the request. An
// absent cookie yields the empty string, which the verifier rejects.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(identity.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// respondError maps core errors onto the HTTP status taxonomy. Store
// failures stay opaque to the client and are logged for operators.
func respondError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, identity.ErrUnauthorized):
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, auth.ErrForbidden):
		RespondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, repository.ErrBookingNotFound):
		RespondWithError(w, http.StatusNotFound, "Cannot find booking")
	default:
		log.Error().Err(err).Msg("Request failed")
		RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
