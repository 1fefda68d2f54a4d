// Package store provides persistence backed by Postgres. One Store wraps a
// database handle; each resource has its own file of raw-SQL methods.
package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken signals the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrAccountDisabled indicates a login attempt on a deactivated account.
	ErrAccountDisabled = errors.New("user account is disabled")
	// ErrUnauthorized indicates an invalid or missing credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller is authenticated but not the owner.
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound signals the user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrArtistNotFound signals the artist id does not resolve.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrSongNotFound signals the song id does not resolve.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound signals the playlist id does not resolve.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrChartNotFound signals the chart id does not resolve.
	ErrChartNotFound = errors.New("chart not found")
	// ErrSongNotInPlaylist signals the song is not a member of the playlist.
	ErrSongNotInPlaylist = errors.New("song not found in playlist")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
