// Package analytics turns the per-song, per-region, per-day counter table
// into report shapes. It only reads; no row is ever mutated here, and
// absence of data yields zero totals and empty lists, never an error.
package analytics

import (
	"context"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

// Store captures the persistence needs for analytics reporting.
type Store interface {
	GlobalTotals(ctx context.Context) (store.AnalyticsTotals, error)
	SongTotals(ctx context.Context, songID int64) (store.AnalyticsTotals, error)
	RegionTotals(ctx context.Context) ([]store.RegionTotals, error)
	SongRegionTotals(ctx context.Context, songID int64) ([]store.RegionTotals, error)
	RecentSongStats(ctx context.Context, songID int64, limit int) ([]models.AnalyticsRow, error)
	TrendingSongs(ctx context.Context, limit int) ([]models.Song, error)
	GetSong(ctx context.Context, id int64) (models.Song, error)
}

// Service computes the analytics reports.
type Service interface {
	Overview(ctx context.Context) (models.AnalyticsOverview, error)
	Regions(ctx context.Context) ([]models.RegionAnalytics, error)
	Song(ctx context.Context, songID int64) (models.SongAnalytics, error)
}

const (
	topSongsLimit   = 10
	dailyStatsLimit = 30
)

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// Overview sums the counters across all rows and attaches the ten most
// streamed songs plus a region breakdown.
func (s *service) Overview(ctx context.Context) (models.AnalyticsOverview, error) {
	if err := ctx.Err(); err != nil {
		return models.AnalyticsOverview{}, err
	}

	totals, err := s.store.GlobalTotals(ctx)
	if err != nil {
		return models.AnalyticsOverview{}, err
	}

	topSongs, err := s.store.TrendingSongs(ctx, topSongsLimit)
	if err != nil {
		return models.AnalyticsOverview{}, err
	}

	regions, err := s.store.RegionTotals(ctx)
	if err != nil {
		return models.AnalyticsOverview{}, err
	}

	if topSongs == nil {
		topSongs = []models.Song{}
	}
	return models.AnalyticsOverview{
		TotalStreams:         totals.Streams,
		TotalUniqueListeners: totals.UniqueListeners,
		TotalLikes:           totals.Likes,
		TotalShares:          totals.Shares,
		TopSongs:             topSongs,
		TopRegions:           shareBreakdown(regions),
	}, nil
}

// Regions groups all rows by region and computes each region's share of the
// grand total. A zero grand total makes every share exactly 0.
func (s *service) Regions(ctx context.Context) ([]models.RegionAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	regions, err := s.store.RegionTotals(ctx)
	if err != nil {
		return nil, err
	}
	return shareBreakdown(regions), nil
}

// Song reports one song's lifetime totals, its region breakdown and the 30
// most recent daily rows. The per-song breakdown does not carry a computed
// share; SharePercentage stays 0 in this view.
func (s *service) Song(ctx context.Context, songID int64) (models.SongAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return models.SongAnalytics{}, err
	}

	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		return models.SongAnalytics{}, err
	}

	totals, err := s.store.SongTotals(ctx, songID)
	if err != nil {
		return models.SongAnalytics{}, err
	}

	regions, err := s.store.SongRegionTotals(ctx, songID)
	if err != nil {
		return models.SongAnalytics{}, err
	}

	daily, err := s.store.RecentSongStats(ctx, songID, dailyStatsLimit)
	if err != nil {
		return models.SongAnalytics{}, err
	}

	breakdown := make([]models.RegionAnalytics, 0, len(regions))
	for _, r := range regions {
		breakdown = append(breakdown, models.RegionAnalytics{
			Region:          r.Region,
			TotalStreams:    r.Streams,
			UniqueListeners: r.UniqueListeners,
		})
	}
	if daily == nil {
		daily = []models.AnalyticsRow{}
	}

	return models.SongAnalytics{
		Song:                 song,
		TotalStreams:         totals.Streams,
		TotalUniqueListeners: totals.UniqueListeners,
		RegionBreakdown:      breakdown,
		DailyStats:           daily,
	}, nil
}

// shareBreakdown converts grouped region totals into the response shape,
// computing each region's share over the grand total of the same rows.
func shareBreakdown(regions []store.RegionTotals) []models.RegionAnalytics {
	var grandTotal int64
	for _, r := range regions {
		grandTotal += r.Streams
	}

	breakdown := make([]models.RegionAnalytics, 0, len(regions))
	for _, r := range regions {
		var share float64
		if grandTotal > 0 {
			share = float64(r.Streams) / float64(grandTotal) * 100
		}
		breakdown = append(breakdown, models.RegionAnalytics{
			Region:          r.Region,
			TotalStreams:    r.Streams,
			UniqueListeners: r.UniqueListeners,
			SharePercentage: share,
		})
	}
	return breakdown
}
