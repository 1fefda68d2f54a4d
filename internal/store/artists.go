package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"playlistke/internal/models"
)

const artistColumns = `id, name, COALESCE(bio, ''), COALESCE(image_url, ''),
	COALESCE(region, ''), COALESCE(genre, ''), monthly_listeners, created_at, updated_at`

// ArtistFilter defines criteria for listing artists.
type ArtistFilter struct {
	Genre  string
	Region string
	Skip   int
	Limit  int
}

func scanArtist(row interface{ Scan(...any) error }) (models.Artist, error) {
	var artist models.Artist
	err := row.Scan(
		&artist.ID, &artist.Name, &artist.Bio, &artist.ImageURL,
		&artist.Region, &artist.Genre, &artist.MonthlyListeners,
		&artist.CreatedAt, &artist.UpdatedAt,
	)
	return artist, err
}

// ListArtists returns artists matching the filter, offset/limit paginated.
func (s *Store) ListArtists(ctx context.Context, filter ArtistFilter) ([]models.Artist, error) {
	query := `
		SELECT ` + artistColumns + `
		FROM artists
		WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Genre != "" {
		query += fmt.Sprintf(" AND genre = $%d", argIdx)
		args = append(args, filter.Genre)
		argIdx++
	}
	if filter.Region != "" {
		query += fmt.Sprintf(" AND region = $%d", argIdx)
		args = append(args, filter.Region)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY id OFFSET $%d LIMIT $%d", argIdx, argIdx+1)
	args = append(args, filter.Skip, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// GetArtist returns a single artist by id.
func (s *Store) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	artist, err := scanArtist(s.db.QueryRowContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

// CreateArtist inserts an artist and returns the stored row.
func (s *Store) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	created, err := scanArtist(s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, bio, image_url, region, genre, monthly_listeners)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+artistColumns,
		strings.TrimSpace(artist.Name), artist.Bio, artist.ImageURL,
		artist.Region, artist.Genre, artist.MonthlyListeners,
	))
	if err != nil {
		return models.Artist{}, fmt.Errorf("insert artist: %w", err)
	}
	return created, nil
}

// ArtistPatch holds the optional fields of an artist update.
type ArtistPatch struct {
	Name             *string
	Bio              *string
	ImageURL         *string
	Region           *string
	Genre            *string
	MonthlyListeners *int64
}

// UpdateArtist applies a patch to an artist, column by column.
func (s *Store) UpdateArtist(ctx context.Context, id int64, patch ArtistPatch) (models.Artist, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Name != nil {
		add("name", strings.TrimSpace(*patch.Name))
	}
	if patch.Bio != nil {
		add("bio", *patch.Bio)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Region != nil {
		add("region", *patch.Region)
	}
	if patch.Genre != nil {
		add("genre", *patch.Genre)
	}
	if patch.MonthlyListeners != nil {
		add("monthly_listeners", *patch.MonthlyListeners)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE artists
		SET %s
		WHERE id = $%d
		RETURNING `+artistColumns, strings.Join(set, ", "), argIdx)

	artist, err := scanArtist(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, fmt.Errorf("update artist: %w", err)
	}
	return artist, nil
}

// DeleteArtist removes an artist by id.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}
	return nil
}
