package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectOwnerLookup(mock sqlmock.Sqlmock, playlistID, ownerID int64) {
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT user_id
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs(playlistID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(ownerID))
}

func expectSongLookup(mock sqlmock.Sqlmock, songID int64) {
	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM songs
		WHERE id = $1
	`)).
		WithArgs(songID).
		WillReturnRows(songRows().AddRow(
			songID, "Sipangwingwi", int64(1), "", 180, nil, "Gengetone", "Nairobi",
			int64(1000), 4, "", "", false, time.Now(), time.Now(),
		))
}

func songRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "artist_id", "album", "duration_seconds", "release_date",
		"genre", "region", "stream_count", "rating", "cover_url", "audio_url",
		"is_explicit", "created_at", "updated_at",
	})
}

func TestUpdatePlaylistForbiddenForNonOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)

	name := "Renamed"
	_, err = s.UpdatePlaylist(context.Background(), 9, 2, PlaylistPatch{Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePlaylistMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT user_id
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	name := "Renamed"
	_, err = s.UpdatePlaylist(context.Background(), 4, 999, PlaylistPatch{Name: &name})
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestDeletePlaylistOwnerOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeletePlaylist(context.Background(), 4, 2); err != nil {
		t.Fatalf("DeletePlaylist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddSongToPlaylistDefaultsToEndPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)
	expectSongLookup(mock, 7)
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT MAX(position)
		FROM playlist_songs
		WHERE playlist_id = $1
	`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(3)))
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		VALUES ($1, $2, $3)
	`)).
		WithArgs(int64(2), int64(7), 4).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.AddSongToPlaylist(context.Background(), 4, 2, 7, 0); err != nil {
		t.Fatalf("AddSongToPlaylist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddSongToEmptyPlaylistStartsAtOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)
	expectSongLookup(mock, 7)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(position)`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO playlist_songs`)).
		WithArgs(int64(2), int64(7), 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.AddSongToPlaylist(context.Background(), 4, 2, 7, 0); err != nil {
		t.Fatalf("AddSongToPlaylist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddSongToPlaylistExplicitPositionSkipsMaxLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)
	expectSongLookup(mock, 7)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO playlist_songs`)).
		WithArgs(int64(2), int64(7), 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.AddSongToPlaylist(context.Background(), 4, 2, 7, 2); err != nil {
		t.Fatalf("AddSongToPlaylist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddSongToPlaylistMissingSong(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)
	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM songs
		WHERE id = $1
	`)).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	if err := s.AddSongToPlaylist(context.Background(), 4, 2, 999, 0); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}

func TestRemoveSongFromPlaylistNotAMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnerLookup(mock, 2, 4)
	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`)).
		WithArgs(int64(2), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemoveSongFromPlaylist(context.Background(), 4, 2, 7); !errors.Is(err, ErrSongNotInPlaylist) {
		t.Fatalf("expected ErrSongNotInPlaylist, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPlaylistComposesSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "cover_url", "created_at", "updated_at",
		}).AddRow(int64(2), "Gengetone Hits", "", int64(4), true, "", time.Now(), time.Now()))

	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC, ps.id ASC
	`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "playlist_id", "song_id", "position", "added_at",
			"s_id", "title", "artist_id", "album", "duration_seconds", "release_date",
			"genre", "region", "stream_count", "rating", "cover_url", "audio_url",
			"is_explicit", "created_at", "updated_at",
		}).AddRow(
			int64(10), int64(2), int64(7), 1, time.Now(),
			int64(7), "Sipangwingwi", int64(1), "", 180, nil, "Gengetone", "Nairobi",
			int64(1000), 4, "", "", false, time.Now(), time.Now(),
		))

	detail, err := s.GetPlaylist(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetPlaylist error: %v", err)
	}
	if detail.Name != "Gengetone Hits" || len(detail.Songs) != 1 {
		t.Fatalf("unexpected detail: %#v", detail)
	}
	if detail.Songs[0].Position != 1 || detail.Songs[0].Song == nil || detail.Songs[0].Song.Title != "Sipangwingwi" {
		t.Fatalf("unexpected playlist song: %#v", detail.Songs[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListPlaylistsByUserPublicOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM playlists
		WHERE user_id = $1 AND is_public = TRUE ORDER BY id OFFSET $2 LIMIT $3
	`)).
		WithArgs(int64(4), 0, 100).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "cover_url", "created_at", "updated_at",
		}))

	playlists, err := s.ListPlaylistsByUser(context.Background(), 4, true, 0, 100)
	if err != nil {
		t.Fatalf("ListPlaylistsByUser error: %v", err)
	}
	if len(playlists) != 0 {
		t.Fatalf("expected no playlists, got %d", len(playlists))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
