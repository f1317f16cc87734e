package service

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dbertella/bbs/internal/auth"
	"github.com/dbertella/bbs/internal/events"
	"github.com/dbertella/bbs/internal/identity"
	"github.com/dbertella/bbs/internal/models"
	"github.com/dbertella/bbs/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = newValidator()

// newValidator reports fields under their json names so validation
// errors name the field the way the client sent it.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// UnknownUser is shown when the owner of a booking cannot be resolved
// in the identity directory.
const UnknownUser = "Unknown User"

// maxLookupConcurrency caps the per-booking enrichment fan-out so a
// large list cannot open an unbounded number of lookups at once.
const maxLookupConcurrency = 8

// BookingService orchestrates the booking lifecycle: validation,
// authorization, persistence and read-time enrichment.
type BookingService struct {
	bookings  repository.BookingRepository
	users     repository.UserRepository
	guard     *auth.Guard
	directory identity.Directory
	families  *FamilyResolver
	publisher *events.Publisher
	log       zerolog.Logger
}

// NewBookingService creates a booking service
func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	guard *auth.Guard,
	directory identity.Directory,
	families *FamilyResolver,
	publisher *events.Publisher,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		users:     users,
		guard:     guard,
		directory: directory,
		families:  families,
		publisher: publisher,
		log:       log,
	}
}

// Create validates the request, stamps the authenticated user as owner
// and persists a new booking, returning its id.
func (s *BookingService) Create(ctx context.Context, req *models.BookingRequest, token string) (string, error) {
	fields, err := parseBookingRequest(req)
	if err != nil {
		return "", err
	}

	ident, err := s.guard.AuthorizeCreate(ctx, token)
	if err != nil {
		return "", err
	}

	booking := &models.Booking{
		House:        fields.House,
		DateFrom:     fields.DateFrom,
		DateTo:       fields.DateTo,
		UserID:       ident.UID,
		Notes:        fields.Notes,
		NumberPeople: fields.NumberPeople,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return "", err
	}

	s.log.Info().Str("booking_id", booking.ID).Str("user_id", ident.UID).Msg("Booking created")
	s.publisher.BookingCreated(ctx, booking)

	return booking.ID, nil
}

// Update re-validates the request and applies it after the ownership
// check. Omitted optional fields reset to null; the owner never changes.
func (s *BookingService) Update(ctx context.Context, id string, req *models.BookingRequest, token string) (*models.Booking, error) {
	fields, err := parseBookingRequest(req)
	if err != nil {
		return nil, err
	}

	ident, err := s.guard.AuthorizeMutation(ctx, id, token)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("booking_id", id).Str("user_id", ident.UID).Msg("Booking updated")
	s.publisher.BookingUpdated(ctx, booking)

	return booking, nil
}

// Delete hard-deletes a booking after the ownership check.
func (s *BookingService) Delete(ctx context.Context, id, token string) error {
	ident, err := s.guard.AuthorizeMutation(ctx, id, token)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("booking_id", id).Str("user_id", ident.UID).Msg("Booking deleted")
	s.publisher.BookingDeleted(ctx, id, ident.UID)

	return nil
}

// ListAll returns every booking enriched with owner and family display
// data. Any valid session may read the whole list; the household model
// is deliberately open. Lookups fan out per booking with a concurrency
// cap, and a failed lookup degrades that row to sentinel values rather
// than failing the list.
func (s *BookingService) ListAll(ctx context.Context, token string) ([]models.EnrichedBooking, error) {
	if _, err := s.guard.AuthorizeRead(ctx, token); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedBooking, len(bookings))
	sem := make(chan struct{}, maxLookupConcurrency)
	var wg sync.WaitGroup

	for i, booking := range bookings {
		wg.Add(1)
		go func(i int, booking *models.Booking) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			enriched[i] = s.enrich(ctx, booking)
		}(i, booking)
	}
	wg.Wait()

	return enriched, nil
}

func (s *BookingService) enrich(ctx context.Context, booking *models.Booking) models.EnrichedBooking {
	out := models.EnrichedBooking{
		ID:           booking.ID,
		House:        booking.House,
		DateFrom:     booking.DateFrom,
		DateTo:       booking.DateTo,
		UserID:       booking.UserID,
		UserEmail:    UnknownUser,
		UserName:     UnknownUser,
		Notes:        booking.Notes,
		NumberPeople: booking.NumberPeople,
	}

	var email string
	user, err := s.directory.User(ctx, booking.UserID)
	if err == nil {
		if user.Email != "" {
			out.UserEmail = user.Email
			email = user.Email
		}
		if user.DisplayName != "" {
			out.UserName = user.DisplayName
		}
	}

	family := s.families.Resolve(ctx, email)
	out.FamilyName = family.Name
	out.FamilyColor = family.Color

	return out
}

// AssignFamily associates a family with the authenticated user's
// profile, keyed by email.
func (s *BookingService) AssignFamily(ctx context.Context, familyID, token string) error {
	if familyID == "" {
		return invalidField("familyId", "required")
	}

	ident, err := s.guard.AuthorizeRead(ctx, token)
	if err != nil {
		return err
	}

	// Profiles are keyed by email; fall back to the uid when the
	// provider did not supply one.
	key := ident.Email
	if key == "" {
		key = ident.UID
	}

	return s.users.SetFamily(ctx, key, familyID)
}

// parseBookingRequest validates the raw request and converts it to
// typed fields. Dates accept RFC 3339 or plain yyyy-mm-dd, and the
// range must not be reversed.
func parseBookingRequest(req *models.BookingRequest) (*models.BookingUpdate, error) {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return nil, invalidField(errs[0].Field(), "required")
		}
		return nil, invalidField("request", err.Error())
	}

	house := models.House(req.House)
	if !house.Valid() {
		return nil, invalidField("house", "must be SERRA or SOLARO")
	}

	dateFrom, err := parseDate(req.DateFrom)
	if err != nil {
		return nil, invalidField("dateFrom", "must be an ISO-8601 date")
	}
	dateTo, err := parseDate(req.DateTo)
	if err != nil {
		return nil, invalidField("dateTo", "must be an ISO-8601 date")
	}
	if dateFrom.After(dateTo) {
		return nil, invalidField("dateTo", "must not be before dateFrom")
	}

	fields := &models.BookingUpdate{
		House:    house,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}

	if req.Notes != "" {
		notes := req.Notes
		fields.Notes = &notes
	}

	if req.NumberPeople != "" {
		n, err := strconv.Atoi(req.NumberPeople)
		if err != nil || n < 1 {
			return nil, invalidField("numberPeople", "must be a positive integer")
		}
		fields.NumberPeople = &n
	}

	return fields, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
