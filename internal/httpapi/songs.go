package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

type songRequest struct {
	Title           string     `json:"title"`
	ArtistID        int64      `json:"artist_id"`
	Album           string     `json:"album"`
	DurationSeconds int        `json:"duration_seconds"`
	ReleaseDate     *time.Time `json:"release_date"`
	Genre           string     `json:"genre"`
	Region          string     `json:"region"`
	StreamCount     int64      `json:"stream_count"`
	Rating          int        `json:"rating"`
	CoverURL        string     `json:"cover_url"`
	AudioURL        string     `json:"audio_url"`
	IsExplicit      bool       `json:"is_explicit"`
}

type songPatchRequest struct {
	Title           *string    `json:"title"`
	ArtistID        *int64     `json:"artist_id"`
	Album           *string    `json:"album"`
	DurationSeconds *int       `json:"duration_seconds"`
	ReleaseDate     *time.Time `json:"release_date"`
	Genre           *string    `json:"genre"`
	Region          *string    `json:"region"`
	StreamCount     *int64     `json:"stream_count"`
	Rating          *int       `json:"rating"`
	CoverURL        *string    `json:"cover_url"`
	AudioURL        *string    `json:"audio_url"`
	IsExplicit      *bool      `json:"is_explicit"`
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	filter := store.SongFilter{
		Genre:  r.URL.Query().Get("genre"),
		Region: r.URL.Query().Get("region"),
		Skip:   queryInt(r, "skip", 0, 0, 1<<31-1),
		Limit:  queryInt(r, "limit", 100, 1, 1000),
	}
	if raw := r.URL.Query().Get("artist_id"); raw != "" {
		artistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist_id parameter"})
			return
		}
		filter.ArtistID = artistID
	}

	songs, err := s.songs.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleTrendingSongs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10, 1, 100)
	songs, err := s.songs.Trending(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleNewReleases(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10, 1, 100)
	songs, err := s.songs.NewReleases(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	song, err := s.songs.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Title == "" || req.ArtistID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title and artist_id are required"})
		return
	}

	song, err := s.songs.Create(r.Context(), models.Song{
		Title:           req.Title,
		ArtistID:        req.ArtistID,
		Album:           req.Album,
		DurationSeconds: req.DurationSeconds,
		ReleaseDate:     req.ReleaseDate,
		Genre:           req.Genre,
		Region:          req.Region,
		StreamCount:     req.StreamCount,
		Rating:          req.Rating,
		CoverURL:        req.CoverURL,
		AudioURL:        req.AudioURL,
		IsExplicit:      req.IsExplicit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	var req songPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	song, err := s.songs.Update(r.Context(), id, store.SongPatch{
		Title:           req.Title,
		ArtistID:        req.ArtistID,
		Album:           req.Album,
		DurationSeconds: req.DurationSeconds,
		ReleaseDate:     req.ReleaseDate,
		Genre:           req.Genre,
		Region:          req.Region,
		StreamCount:     req.StreamCount,
		Rating:          req.Rating,
		CoverURL:        req.CoverURL,
		AudioURL:        req.AudioURL,
		IsExplicit:      req.IsExplicit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	if err := s.songs.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
