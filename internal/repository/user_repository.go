package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dbertella/bbs/internal/models"
	"github.com/rs/zerolog"
)

var (
	// ErrProfileNotFound is returned when a user profile is not found
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrFamilyNotFound is returned when a family is not found
	ErrFamilyNotFound = errors.New("family not found")
)

// UserRepository defines access to user profile documents, keyed by email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	SetFamily(ctx context.Context, email, familyID string) error
}

// FamilyRepository defines access to family records.
type FamilyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Family, error)
}

type userRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewUserRepository creates a new user profile repository
func NewUserRepository(db *sql.DB, log zerolog.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

// GetByEmail retrieves a user profile by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := `
		SELECT email, family_id, updated_at
		FROM users
		WHERE email = $1
	`

	var (
		profile  models.UserProfile
		familyID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&profile.Email,
		&familyID,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		r.log.Error().Err(err).Str("email", email).Msg("Failed to get user profile")
		return nil, err
	}

	if familyID.Valid {
		profile.FamilyID = &familyID.String
	}

	return &profile, nil
}

// SetFamily associates the given family with the user's profile,
// creating the profile document when it does not exist yet.
func (r *userRepository) SetFamily(ctx context.Context, email, familyID string) error {
	query := `
		INSERT INTO users (email, family_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT(email) DO UPDATE SET family_id = $2, updated_at = $3
	`

	_, err := r.db.ExecContext(ctx, query, email, familyID, time.Now().UTC())
	if err != nil {
		r.log.Error().Err(err).Str("email", email).Msg("Failed to set family association")
		return err
	}

	return nil
}

type familyRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *sql.DB, log zerolog.Logger) FamilyRepository {
	return &familyRepository{
		db:  db,
		log: log,
	}
}

// GetByID retrieves a family by its ID
func (r *familyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	query := `
		SELECT id, name, color
		FROM families
		WHERE id = $1
	`

	var (
		family models.Family
		color  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&family.ID,
		&family.Name,
		&color,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFamilyNotFound
		}
		r.log.Error().Err(err).Str("family_id", id).Msg("Failed to get family")
		return nil, err
	}

	family.Color = color.String

	return &family, nil
}
