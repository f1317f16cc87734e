package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dbertella/bbs/internal/identity"
	"github.com/rs/zerolog"
)

// accountRepository resolves uids to display data from the accounts
// table. It satisfies identity.Directory.
type accountRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewAccountDirectory creates a directory backed by the accounts table.
func NewAccountDirectory(db *sql.DB, log zerolog.Logger) identity.Directory {
	return &accountRepository{
		db:  db,
		log: log,
	}
}

// User retrieves the display record for a uid
func (r *accountRepository) User(ctx context.Context, uid string) (*identity.UserRecord, error) {
	query := `
		SELECT email, display_name
		FROM accounts
		WHERE uid = $1
	`

	var email, displayName sql.NullString
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&email, &displayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		r.log.Error().Err(err).Str("uid", uid).Msg("Failed to look up account")
		return nil, err
	}

	return &identity.UserRecord{
		Email:       email.String,
		DisplayName: displayName.String,
	}, nil
}
