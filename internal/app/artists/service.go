package artists

import (
	"context"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

// Store captures the persistence needs for artist workflows.
type Store interface {
	ListArtists(ctx context.Context, filter store.ArtistFilter) ([]models.Artist, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	SongsByArtist(ctx context.Context, artistID int64, skip, limit int) ([]models.Song, error)
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, patch store.ArtistPatch) (models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// Service coordinates artist catalog operations.
type Service interface {
	List(ctx context.Context, filter store.ArtistFilter) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (models.Artist, error)
	Songs(ctx context.Context, artistID int64, skip, limit int) ([]models.Song, error)
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, patch store.ArtistPatch) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, filter store.ArtistFilter) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.GetArtist(ctx, id)
}

// Songs returns an artist's catalog; the artist must exist.
func (s *service) Songs(ctx context.Context, artistID int64, skip, limit int) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}
	return s.store.SongsByArtist(ctx, artistID, skip, limit)
}

func (s *service) Create(ctx context.Context, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Update(ctx context.Context, id int64, patch store.ArtistPatch) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.UpdateArtist(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}
