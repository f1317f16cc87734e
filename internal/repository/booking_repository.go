package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dbertella/bbs/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrBookingNotFound is returned when a booking is not found
	ErrBookingNotFound = errors.New("booking not found")
)

// BookingRepository defines the interface for booking data access.
// It owns the on-disk field layout; callers only see models.Booking.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, update *models.BookingUpdate) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Booking, error)
}

type bookingRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB, log zerolog.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log,
	}
}

// Create inserts a new booking, assigning its id and timestamps.
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, house, date_from, date_to, user_id, notes, number_people, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	booking.ID = uuid.New().String()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		string(booking.House),
		booking.DateFrom,
		booking.DateTo,
		booking.UserID,
		nullString(booking.Notes),
		nullInt(booking.NumberPeople),
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error().Err(err).Str("booking_id", booking.ID).Msg("Failed to create booking")
		return err
	}

	return nil
}

// GetByID retrieves a booking by its ID
func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT id, house, date_from, date_to, user_id, notes, number_people, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		r.log.Error().Err(err).Str("booking_id", id).Msg("Failed to get booking by ID")
		return nil, err
	}

	return booking, nil
}

// Update rewrites every mutable column. Omitted optional fields arrive
// as nil pointers and land as NULL, never keeping a stale value.
// user_id is deliberately not part of the statement.
func (r *bookingRepository) Update(ctx context.Context, id string, update *models.BookingUpdate) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET house = $1, date_from = $2, date_to = $3, notes = $4, number_people = $5, updated_at = $6
		WHERE id = $7
		RETURNING id, house, date_from, date_to, user_id, notes, number_people, created_at, updated_at
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query,
		string(update.House),
		update.DateFrom,
		update.DateTo,
		nullString(update.Notes),
		nullInt(update.NumberPeople),
		time.Now().UTC(),
		id,
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		r.log.Error().Err(err).Str("booking_id", id).Msg("Failed to update booking")
		return nil, err
	}

	return booking, nil
}

// Delete removes a booking. Bookings are never soft-deleted.
func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.log.Error().Err(err).Str("booking_id", id).Msg("Failed to delete booking")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for booking delete")
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// List returns every stored booking ordered by start date.
func (r *bookingRepository) List(ctx context.Context) ([]*models.Booking, error) {
	query := `
		SELECT id, house, date_from, date_to, user_id, notes, number_people, created_at, updated_at
		FROM bookings
		ORDER BY date_from
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list bookings")
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan booking")
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		booking models.Booking
		house   string
		notes   sql.NullString
		people  sql.NullInt64
	)

	if err := row.Scan(
		&booking.ID,
		&house,
		&booking.DateFrom,
		&booking.DateTo,
		&booking.UserID,
		&notes,
		&people,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}

	booking.House = models.House(house)
	if notes.Valid {
		booking.Notes = &notes.String
	}
	if people.Valid {
		n := int(people.Int64)
		booking.NumberPeople = &n
	}

	return &booking, nil
}

// nullString returns sql.NullString for a string pointer
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullInt returns sql.NullInt64 for an int pointer
func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
