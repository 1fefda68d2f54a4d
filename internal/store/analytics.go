package store

import (
	"context"
	"database/sql"
	"fmt"

	"playlistke/internal/models"
)

// AnalyticsTotals carries platform-wide counter sums. Missing rows sum to
// zero rather than erroring.
type AnalyticsTotals struct {
	Streams         int64
	UniqueListeners int64
	Likes           int64
	Shares          int64
}

// RegionTotals is one region's summed counters before share computation.
// Rows with a NULL region are grouped under "Unknown".
type RegionTotals struct {
	Region          string
	Streams         int64
	UniqueListeners int64
}

const analyticsColumns = `id, song_id, COALESCE(region, ''), date, stream_count,
	unique_listeners, likes_count, shares_count, created_at`

// GlobalTotals sums the counters across all analytics rows.
func (s *Store) GlobalTotals(ctx context.Context) (AnalyticsTotals, error) {
	var totals AnalyticsTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(stream_count), 0),
			COALESCE(SUM(unique_listeners), 0),
			COALESCE(SUM(likes_count), 0),
			COALESCE(SUM(shares_count), 0)
		FROM analytics
	`).Scan(&totals.Streams, &totals.UniqueListeners, &totals.Likes, &totals.Shares)
	if err != nil {
		return AnalyticsTotals{}, fmt.Errorf("global totals: %w", err)
	}
	return totals, nil
}

// SongTotals sums stream and unique-listener counters for one song.
func (s *Store) SongTotals(ctx context.Context, songID int64) (AnalyticsTotals, error) {
	var totals AnalyticsTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(stream_count), 0),
			COALESCE(SUM(unique_listeners), 0)
		FROM analytics
		WHERE song_id = $1
	`, songID).Scan(&totals.Streams, &totals.UniqueListeners)
	if err != nil {
		return AnalyticsTotals{}, fmt.Errorf("song totals: %w", err)
	}
	return totals, nil
}

// RegionTotals groups all analytics rows by region and sums their counters.
func (s *Store) RegionTotals(ctx context.Context) ([]RegionTotals, error) {
	return s.queryRegionTotals(ctx, `
		SELECT COALESCE(region, 'Unknown'),
			COALESCE(SUM(stream_count), 0),
			COALESCE(SUM(unique_listeners), 0)
		FROM analytics
		GROUP BY region`)
}

// SongRegionTotals groups one song's analytics rows by region.
func (s *Store) SongRegionTotals(ctx context.Context, songID int64) ([]RegionTotals, error) {
	return s.queryRegionTotals(ctx, `
		SELECT COALESCE(region, 'Unknown'),
			COALESCE(SUM(stream_count), 0),
			COALESCE(SUM(unique_listeners), 0)
		FROM analytics
		WHERE song_id = $1
		GROUP BY region`, songID)
}

func (s *Store) queryRegionTotals(ctx context.Context, query string, args ...any) ([]RegionTotals, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("region totals: %w", err)
	}
	defer rows.Close()

	var totals []RegionTotals
	for rows.Next() {
		var rt RegionTotals
		if err := rows.Scan(&rt.Region, &rt.Streams, &rt.UniqueListeners); err != nil {
			return nil, fmt.Errorf("scan region totals: %w", err)
		}
		if rt.Region == "" {
			rt.Region = "Unknown"
		}
		totals = append(totals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate region totals: %w", err)
	}
	return totals, nil
}

// RecentSongStats returns a song's most recent analytics rows by date.
func (s *Store) RecentSongStats(ctx context.Context, songID int64, limit int) ([]models.AnalyticsRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+analyticsColumns+`
		FROM analytics
		WHERE song_id = $1
		ORDER BY date DESC
		LIMIT $2`, songID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent song stats: %w", err)
	}
	defer rows.Close()

	var stats []models.AnalyticsRow
	for rows.Next() {
		var row models.AnalyticsRow
		var date sql.NullTime
		if err := rows.Scan(
			&row.ID, &row.SongID, &row.Region, &date, &row.StreamCount,
			&row.UniqueListeners, &row.LikesCount, &row.SharesCount, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analytics row: %w", err)
		}
		if date.Valid {
			row.Date = date.Time
		}
		stats = append(stats, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analytics rows: %w", err)
	}
	return stats, nil
}
