package songs

import (
	"context"
	"errors"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	ListSongs(ctx context.Context, filter store.SongFilter) ([]models.Song, error)
	TrendingSongs(ctx context.Context, limit int) ([]models.Song, error)
	NewReleases(ctx context.Context, limit int) ([]models.Song, error)
	GetSong(ctx context.Context, id int64) (models.Song, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	CreateSong(ctx context.Context, song models.Song) (models.Song, error)
	UpdateSong(ctx context.Context, id int64, patch store.SongPatch) (models.Song, error)
	DeleteSong(ctx context.Context, id int64) error
}

// Service coordinates song catalog operations.
type Service interface {
	List(ctx context.Context, filter store.SongFilter) ([]models.Song, error)
	Trending(ctx context.Context, limit int) ([]models.Song, error)
	NewReleases(ctx context.Context, limit int) ([]models.Song, error)
	Get(ctx context.Context, id int64) (models.Song, error)
	Create(ctx context.Context, song models.Song) (models.Song, error)
	Update(ctx context.Context, id int64, patch store.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, filter store.SongFilter) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, filter)
}

func (s *service) Trending(ctx context.Context, limit int) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.TrendingSongs(ctx, limit)
}

func (s *service) NewReleases(ctx context.Context, limit int) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.NewReleases(ctx, limit)
}

func (s *service) Get(ctx context.Context, id int64) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	return s.store.GetSong(ctx, id)
}

// Create verifies the referenced artist before inserting.
func (s *service) Create(ctx context.Context, song models.Song) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	if _, err := s.store.GetArtist(ctx, song.ArtistID); err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return models.Song{}, store.ErrArtistNotFound
		}
		return models.Song{}, err
	}
	return s.store.CreateSong(ctx, song)
}

func (s *service) Update(ctx context.Context, id int64, patch store.SongPatch) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	return s.store.UpdateSong(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}
