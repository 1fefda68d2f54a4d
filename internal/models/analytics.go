package models

import "time"

// AnalyticsRow is one per-song, per-region, per-day counter record. Rows are
// only ever inserted and read, never updated in place.
type AnalyticsRow struct {
	ID              int64     `json:"id" db:"id"`
	SongID          int64     `json:"song_id" db:"song_id"`
	Region          string    `json:"region,omitempty" db:"region"`
	Date            time.Time `json:"date" db:"date"`
	StreamCount     int64     `json:"stream_count" db:"stream_count"`
	UniqueListeners int64     `json:"unique_listeners" db:"unique_listeners"`
	LikesCount      int64     `json:"likes_count" db:"likes_count"`
	SharesCount     int64     `json:"shares_count" db:"shares_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RegionAnalytics is one region's slice of a breakdown. SharePercentage is
// the region's portion of total streams within the breakdown, 0..100.
type RegionAnalytics struct {
	Region          string  `json:"region"`
	TotalStreams    int64   `json:"total_streams"`
	UniqueListeners int64   `json:"unique_listeners"`
	SharePercentage float64 `json:"share_percentage"`
}

// AnalyticsOverview is the platform-wide report.
type AnalyticsOverview struct {
	TotalStreams         int64             `json:"total_streams"`
	TotalUniqueListeners int64             `json:"total_unique_listeners"`
	TotalLikes           int64             `json:"total_likes"`
	TotalShares          int64             `json:"total_shares"`
	TopSongs             []Song            `json:"top_songs"`
	TopRegions           []RegionAnalytics `json:"top_regions"`
}

// SongAnalytics is the per-song report: lifetime totals, a region breakdown
// scoped to the song, and the most recent daily rows.
type SongAnalytics struct {
	Song                 Song              `json:"song"`
	TotalStreams         int64             `json:"total_streams"`
	TotalUniqueListeners int64             `json:"total_unique_listeners"`
	RegionBreakdown      []RegionAnalytics `json:"region_breakdown"`
	DailyStats           []AnalyticsRow    `json:"daily_stats"`
}
