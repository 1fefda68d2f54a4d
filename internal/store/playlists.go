package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"playlistke/internal/models"
)

const playlistColumns = `id, name, COALESCE(description, ''), user_id, is_public,
	COALESCE(cover_url, ''), created_at, updated_at`

func scanPlaylist(row interface{ Scan(...any) error }) (models.Playlist, error) {
	var playlist models.Playlist
	err := row.Scan(
		&playlist.ID, &playlist.Name, &playlist.Description, &playlist.UserID,
		&playlist.IsPublic, &playlist.CoverURL, &playlist.CreatedAt, &playlist.UpdatedAt,
	)
	return playlist, err
}

// ListPublicPlaylists returns public playlists, offset/limit paginated.
func (s *Store) ListPublicPlaylists(ctx context.Context, skip, limit int) ([]models.Playlist, error) {
	return s.queryPlaylists(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE is_public = TRUE
		ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
}

// ListPlaylistsByUser returns a user's playlists. When publicOnly is set,
// private playlists are filtered out (the viewer is not the owner).
func (s *Store) ListPlaylistsByUser(ctx context.Context, userID int64, publicOnly bool, skip, limit int) ([]models.Playlist, error) {
	query := `
		SELECT ` + playlistColumns + `
		FROM playlists
		WHERE user_id = $1`
	if publicOnly {
		query += ` AND is_public = TRUE`
	}
	query += ` ORDER BY id OFFSET $2 LIMIT $3`
	return s.queryPlaylists(ctx, query, userID, skip, limit)
}

func (s *Store) queryPlaylists(ctx context.Context, query string, args ...any) ([]models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// GetPlaylist returns a playlist with its songs ordered by position.
func (s *Store) GetPlaylist(ctx context.Context, id int64) (models.PlaylistDetail, error) {
	playlist, err := scanPlaylist(s.db.QueryRowContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlaylistDetail{}, ErrPlaylistNotFound
	}
	if err != nil {
		return models.PlaylistDetail{}, fmt.Errorf("get playlist: %w", err)
	}

	songs, err := s.listPlaylistSongs(ctx, id)
	if err != nil {
		return models.PlaylistDetail{}, err
	}
	return models.PlaylistDetail{Playlist: playlist, Songs: songs}, nil
}

func (s *Store) listPlaylistSongs(ctx context.Context, playlistID int64) ([]models.PlaylistSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ps.id, ps.playlist_id, ps.song_id, ps.position, ps.added_at,
			s.id, s.title, s.artist_id, COALESCE(s.album, ''), COALESCE(s.duration_seconds, 0),
			s.release_date, COALESCE(s.genre, ''), COALESCE(s.region, ''), s.stream_count, s.rating,
			COALESCE(s.cover_url, ''), COALESCE(s.audio_url, ''), s.is_explicit, s.created_at, s.updated_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC, ps.id ASC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	var songs []models.PlaylistSong
	for rows.Next() {
		var entry models.PlaylistSong
		var song models.Song
		var releaseDate sql.NullTime
		if err := rows.Scan(
			&entry.ID, &entry.PlaylistID, &entry.SongID, &entry.Position, &entry.AddedAt,
			&song.ID, &song.Title, &song.ArtistID, &song.Album, &song.DurationSeconds,
			&releaseDate, &song.Genre, &song.Region, &song.StreamCount, &song.Rating,
			&song.CoverURL, &song.AudioURL, &song.IsExplicit, &song.CreatedAt, &song.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		if releaseDate.Valid {
			t := releaseDate.Time
			song.ReleaseDate = &t
		}
		entry.Song = &song
		songs = append(songs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return songs, nil
}

// CreatePlaylist inserts a playlist owned by userID and returns the stored
// row.
func (s *Store) CreatePlaylist(ctx context.Context, userID int64, playlist models.Playlist) (models.Playlist, error) {
	created, err := scanPlaylist(s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (name, description, user_id, is_public, cover_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+playlistColumns,
		strings.TrimSpace(playlist.Name), playlist.Description, userID,
		playlist.IsPublic, playlist.CoverURL,
	))
	if err != nil {
		return models.Playlist{}, fmt.Errorf("insert playlist: %w", err)
	}
	return created, nil
}

// PlaylistPatch holds the optional fields of a playlist update.
type PlaylistPatch struct {
	Name        *string
	Description *string
	IsPublic    *bool
	CoverURL    *string
}

// UpdatePlaylist applies a patch to a playlist owned by userID. A mismatched
// owner is a forbidden signal, not a not-found.
func (s *Store) UpdatePlaylist(ctx context.Context, userID, id int64, patch PlaylistPatch) (models.Playlist, error) {
	if err := s.checkPlaylistOwner(ctx, id, userID); err != nil {
		return models.Playlist{}, err
	}

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
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.IsPublic != nil {
		add("is_public", *patch.IsPublic)
	}
	if patch.CoverURL != nil {
		add("cover_url", *patch.CoverURL)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE playlists
		SET %s
		WHERE id = $%d
		RETURNING `+playlistColumns, strings.Join(set, ", "), argIdx)

	playlist, err := scanPlaylist(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("update playlist: %w", err)
	}
	return playlist, nil
}

// DeletePlaylist removes a playlist owned by userID; its join rows cascade.
func (s *Store) DeletePlaylist(ctx context.Context, userID, id int64) error {
	if err := s.checkPlaylistOwner(ctx, id, userID); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}

// AddSongToPlaylist appends a song. When position is 0, the song lands after
// the current maximum position (1 when the playlist is empty).
func (s *Store) AddSongToPlaylist(ctx context.Context, userID, playlistID, songID int64, position int) error {
	if err := s.checkPlaylistOwner(ctx, playlistID, userID); err != nil {
		return err
	}
	if _, err := s.GetSong(ctx, songID); err != nil {
		return err
	}

	if position == 0 {
		var maxPosition sql.NullInt64
		if err := s.db.QueryRowContext(ctx, `
			SELECT MAX(position)
			FROM playlist_songs
			WHERE playlist_id = $1
		`, playlistID).Scan(&maxPosition); err != nil {
			return fmt.Errorf("max position: %w", err)
		}
		position = int(maxPosition.Int64) + 1
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		VALUES ($1, $2, $3)
	`, playlistID, songID, position); err != nil {
		return fmt.Errorf("insert playlist song: %w", err)
	}
	return nil
}

// RemoveSongFromPlaylist removes a song from a playlist owned by userID.
func (s *Store) RemoveSongFromPlaylist(ctx context.Context, userID, playlistID, songID int64) error {
	if err := s.checkPlaylistOwner(ctx, playlistID, userID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	if affected == 0 {
		return ErrSongNotInPlaylist
	}
	return nil
}

func (s *Store) checkPlaylistOwner(ctx context.Context, playlistID, userID int64) error {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM playlists
		WHERE id = $1
	`, playlistID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup playlist owner: %w", err)
	}
	if ownerID != userID {
		return ErrForbidden
	}
	return nil
}
