package models

import "time"

// Song is a single track in the catalog.
type Song struct {
	ID              int64      `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	ArtistID        int64      `json:"artist_id" db:"artist_id"`
	Album           string     `json:"album,omitempty" db:"album"`
	DurationSeconds int        `json:"duration_seconds" db:"duration_seconds"`
	ReleaseDate     *time.Time `json:"release_date,omitempty" db:"release_date"`
	Genre           string     `json:"genre,omitempty" db:"genre"`
	Region          string     `json:"region,omitempty" db:"region"`
	StreamCount     int64      `json:"stream_count" db:"stream_count"`
	Rating          int        `json:"rating" db:"rating"`
	CoverURL        string     `json:"cover_url,omitempty" db:"cover_url"`
	AudioURL        string     `json:"audio_url,omitempty" db:"audio_url"`
	IsExplicit      bool       `json:"is_explicit" db:"is_explicit"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
