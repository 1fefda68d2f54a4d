package models

import "time"

// Playlist captures a user-curated list of songs.
type Playlist struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	UserID      int64     `json:"user_id" db:"user_id"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CoverURL    string    `json:"cover_url,omitempty" db:"cover_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PlaylistSong is one song's membership in a playlist. Position determines
// the display sequence within the playlist.
type PlaylistSong struct {
	ID         int64     `json:"id" db:"id"`
	PlaylistID int64     `json:"playlist_id" db:"playlist_id"`
	SongID     int64     `json:"song_id" db:"song_id"`
	Position   int       `json:"order" db:"position"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
	Song       *Song     `json:"song,omitempty"`
}

// PlaylistDetail is a playlist together with its ordered songs.
type PlaylistDetail struct {
	Playlist
	Songs []PlaylistSong `json:"songs"`
}
