package playlists

import (
	"context"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

// Store captures the persistence needs for playlist workflows. Ownership is
// enforced at every mutation: a caller who is not the playlist's owner gets
// a forbidden signal regardless of the playlist's visibility.
type Store interface {
	ListPublicPlaylists(ctx context.Context, skip, limit int) ([]models.Playlist, error)
	ListPlaylistsByUser(ctx context.Context, userID int64, publicOnly bool, skip, limit int) ([]models.Playlist, error)
	GetPlaylist(ctx context.Context, id int64) (models.PlaylistDetail, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	CreatePlaylist(ctx context.Context, userID int64, playlist models.Playlist) (models.Playlist, error)
	UpdatePlaylist(ctx context.Context, userID, id int64, patch store.PlaylistPatch) (models.Playlist, error)
	DeletePlaylist(ctx context.Context, userID, id int64) error
	AddSongToPlaylist(ctx context.Context, userID, playlistID, songID int64, position int) error
	RemoveSongFromPlaylist(ctx context.Context, userID, playlistID, songID int64) error
}

// Service coordinates playlist operations.
type Service interface {
	ListPublic(ctx context.Context, skip, limit int) ([]models.Playlist, error)
	ListByUser(ctx context.Context, viewerID, ownerID int64, skip, limit int) ([]models.Playlist, error)
	Get(ctx context.Context, id int64) (models.PlaylistDetail, error)
	Create(ctx context.Context, userID int64, playlist models.Playlist) (models.Playlist, error)
	Update(ctx context.Context, userID, id int64, patch store.PlaylistPatch) (models.Playlist, error)
	Delete(ctx context.Context, userID, id int64) error
	AddSong(ctx context.Context, userID, playlistID, songID int64, position int) (models.PlaylistDetail, error)
	RemoveSong(ctx context.Context, userID, playlistID, songID int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) ListPublic(ctx context.Context, skip, limit int) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPublicPlaylists(ctx, skip, limit)
}

// ListByUser returns ownerID's playlists. Viewers other than the owner only
// see public rows. The owner must exist.
func (s *service) ListByUser(ctx context.Context, viewerID, ownerID int64, skip, limit int) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsByUser(ctx, ownerID, viewerID != ownerID, skip, limit)
}

func (s *service) Get(ctx context.Context, id int64) (models.PlaylistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.PlaylistDetail{}, err
	}
	return s.store.GetPlaylist(ctx, id)
}

func (s *service) Create(ctx context.Context, userID int64, playlist models.Playlist) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	return s.store.CreatePlaylist(ctx, userID, playlist)
}

func (s *service) Update(ctx context.Context, userID, id int64, patch store.PlaylistPatch) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	return s.store.UpdatePlaylist(ctx, userID, id, patch)
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, userID, id)
}

// AddSong appends a song and returns the refreshed playlist detail.
func (s *service) AddSong(ctx context.Context, userID, playlistID, songID int64, position int) (models.PlaylistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.PlaylistDetail{}, err
	}
	if err := s.store.AddSongToPlaylist(ctx, userID, playlistID, songID, position); err != nil {
		return models.PlaylistDetail{}, err
	}
	return s.store.GetPlaylist(ctx, playlistID)
}

func (s *service) RemoveSong(ctx context.Context, userID, playlistID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveSongFromPlaylist(ctx, userID, playlistID, songID)
}
