package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"playlistke/internal/models"
)

const songColumns = `id, title, artist_id, COALESCE(album, ''), COALESCE(duration_seconds, 0),
	release_date, COALESCE(genre, ''), COALESCE(region, ''), stream_count, rating,
	COALESCE(cover_url, ''), COALESCE(audio_url, ''), is_explicit, created_at, updated_at`

// SongFilter defines criteria for listing songs.
type SongFilter struct {
	Genre    string
	Region   string
	ArtistID int64
	Skip     int
	Limit    int
}

func scanSong(row interface{ Scan(...any) error }) (models.Song, error) {
	var song models.Song
	var releaseDate sql.NullTime
	err := row.Scan(
		&song.ID, &song.Title, &song.ArtistID, &song.Album, &song.DurationSeconds,
		&releaseDate, &song.Genre, &song.Region, &song.StreamCount, &song.Rating,
		&song.CoverURL, &song.AudioURL, &song.IsExplicit, &song.CreatedAt, &song.UpdatedAt,
	)
	if err != nil {
		return models.Song{}, err
	}
	if releaseDate.Valid {
		t := releaseDate.Time
		song.ReleaseDate = &t
	}
	return song, nil
}

// ListSongs returns songs matching the filter, offset/limit paginated.
func (s *Store) ListSongs(ctx context.Context, filter SongFilter) ([]models.Song, error) {
	query := `
		SELECT ` + songColumns + `
		FROM songs
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
	if filter.ArtistID != 0 {
		query += fmt.Sprintf(" AND artist_id = $%d", argIdx)
		args = append(args, filter.ArtistID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY id OFFSET $%d LIMIT $%d", argIdx, argIdx+1)
	args = append(args, filter.Skip, filter.Limit)

	return s.querySongs(ctx, query, args...)
}

// TrendingSongs returns the songs with the highest stream counts.
func (s *Store) TrendingSongs(ctx context.Context, limit int) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM songs
		ORDER BY stream_count DESC
		LIMIT $1`, limit)
}

// NewReleases returns the most recently added songs.
func (s *Store) NewReleases(ctx context.Context, limit int) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM songs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
}

// SongsByArtist returns an artist's songs, offset/limit paginated.
func (s *Store) SongsByArtist(ctx context.Context, artistID int64, skip, limit int) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE artist_id = $1
		ORDER BY id OFFSET $2 LIMIT $3`, artistID, skip, limit)
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// GetSong returns a single song by id.
func (s *Store) GetSong(ctx context.Context, id int64) (models.Song, error) {
	song, err := scanSong(s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrSongNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// CreateSong inserts a song in a single statement and returns the stored row
// with its generated id and server defaults.
func (s *Store) CreateSong(ctx context.Context, song models.Song) (models.Song, error) {
	created, err := scanSong(s.db.QueryRowContext(ctx, `
		INSERT INTO songs (title, artist_id, album, duration_seconds, release_date,
			genre, region, stream_count, rating, cover_url, audio_url, is_explicit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+songColumns,
		strings.TrimSpace(song.Title), song.ArtistID, song.Album, song.DurationSeconds,
		song.ReleaseDate, song.Genre, song.Region, song.StreamCount, song.Rating,
		song.CoverURL, song.AudioURL, song.IsExplicit,
	))
	if err != nil {
		return models.Song{}, fmt.Errorf("insert song: %w", err)
	}
	return created, nil
}

// SongPatch holds the optional fields of a song update. Nil fields are left
// untouched.
type SongPatch struct {
	Title           *string
	ArtistID        *int64
	Album           *string
	DurationSeconds *int
	ReleaseDate     *time.Time
	Genre           *string
	Region          *string
	StreamCount     *int64
	Rating          *int
	CoverURL        *string
	AudioURL        *string
	IsExplicit      *bool
}

// UpdateSong applies a patch to a song, column by column.
func (s *Store) UpdateSong(ctx context.Context, id int64, patch SongPatch) (models.Song, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Title != nil {
		add("title", strings.TrimSpace(*patch.Title))
	}
	if patch.ArtistID != nil {
		add("artist_id", *patch.ArtistID)
	}
	if patch.Album != nil {
		add("album", *patch.Album)
	}
	if patch.DurationSeconds != nil {
		add("duration_seconds", *patch.DurationSeconds)
	}
	if patch.ReleaseDate != nil {
		add("release_date", *patch.ReleaseDate)
	}
	if patch.Genre != nil {
		add("genre", *patch.Genre)
	}
	if patch.Region != nil {
		add("region", *patch.Region)
	}
	if patch.StreamCount != nil {
		add("stream_count", *patch.StreamCount)
	}
	if patch.Rating != nil {
		add("rating", *patch.Rating)
	}
	if patch.CoverURL != nil {
		add("cover_url", *patch.CoverURL)
	}
	if patch.AudioURL != nil {
		add("audio_url", *patch.AudioURL)
	}
	if patch.IsExplicit != nil {
		add("is_explicit", *patch.IsExplicit)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE songs
		SET %s
		WHERE id = $%d
		RETURNING `+songColumns, strings.Join(set, ", "), argIdx)

	song, err := scanSong(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrSongNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("update song: %w", err)
	}
	return song, nil
}

// DeleteSong removes a song by id.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}
