package models

import "time"

// Chart is a ranked snapshot of songs for a given week, year and region.
type Chart struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Week      int       `json:"week" db:"week"`
	Year      int       `json:"year" db:"year"`
	Region    string    `json:"region,omitempty" db:"region"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChartEntry is one song's rank within a chart. Trend is a caller-supplied
// label ("up", "down", "stable", "new"), not derived here.
type ChartEntry struct {
	ID           int64     `json:"id" db:"id"`
	ChartID      int64     `json:"chart_id" db:"chart_id"`
	SongID       int64     `json:"song_id" db:"song_id"`
	Rank         int       `json:"rank" db:"rank"`
	PreviousRank *int      `json:"previous_rank,omitempty" db:"previous_rank"`
	Trend        string    `json:"trend,omitempty" db:"trend"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ChartDetail is a chart together with its entries ordered by rank.
type ChartDetail struct {
	Chart
	Entries []ChartEntry `json:"entries"`
}

// WeeklyChart echoes the resolved week, year and region even when no chart
// row matched; absence of a chart is not an error.
type WeeklyChart struct {
	Week    int          `json:"week"`
	Year    int          `json:"year"`
	Region  string       `json:"region,omitempty"`
	Entries []ChartEntry `json:"entries"`
}
