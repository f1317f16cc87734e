package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dbertella/bbs/internal/calendar"
	"github.com/dbertella/bbs/internal/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// BookingHandler handles HTTP requests for the booking lifecycle.
type BookingHandler struct {
	svc BookingService
	log *zerolog.Logger
}

// BookingService is the slice of the lifecycle service the handler
// needs; narrowing it keeps the handler testable with a fake.
type BookingService interface {
	Create(ctx context.Context, req *models.BookingRequest, token string) (string, error)
	Update(ctx context.Context, id string, req *models.BookingRequest, token string) (*models.Booking, error)
	Delete(ctx context.Context, id, token string) error
	ListAll(ctx context.Context, token string) ([]models.EnrichedBooking, error)
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(svc BookingService, log *zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		svc: svc,
		log: log,
	}
}

// CreateBooking handles the booking form submission. It redirects to
// the new booking on success, per the form-post flow.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	req, err := bookingRequestFromForm(r)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	id, err := h.svc.Create(r.Context(), req, sessionToken(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	http.Redirect(w, r, "/bookings/"+id, http.StatusSeeOther)
}

// UpdateBooking handles the edit form submission and redirects home.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	req, err := bookingRequestFromForm(r)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if _, err := h.svc.Update(r.Context(), id, req, sessionToken(r)); err != nil {
		respondError(w, h.log, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteBooking removes a booking and redirects home.
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.Delete(r.Context(), id, sessionToken(r)); err != nil {
		respondError(w, h.log, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ListBookings returns the full enriched booking list as JSON.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListAll(r.Context(), sessionToken(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, bookings)
}

// ListCalendarEvents returns the bookings projected as calendar events.
func (h *BookingHandler) ListCalendarEvents(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListAll(r.Context(), sessionToken(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, calendar.Project(bookings, time.Now()))
}

func bookingRequestFromForm(r *http.Request) (*models.BookingRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	return &models.BookingRequest{
		House:        r.PostFormValue("house"),
		DateFrom:     r.PostFormValue("dateFrom"),
		DateTo:       r.PostFormValue("dateTo"),
		Notes:        r.PostFormValue("notes"),
		NumberPeople: r.PostFormValue("numberPeople"),
	}, nil
}
