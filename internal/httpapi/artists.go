package httpapi

import (
	"encoding/json"
	"net/http"

	"playlistke/internal/models"
	"playlistke/internal/store"
)

type artistRequest struct {
	Name             string `json:"name"`
	Bio              string `json:"bio"`
	ImageURL         string `json:"image_url"`
	Region           string `json:"region"`
	Genre            string `json:"genre"`
	MonthlyListeners int64  `json:"monthly_listeners"`
}

type artistPatchRequest struct {
	Name             *string `json:"name"`
	Bio              *string `json:"bio"`
	ImageURL         *string `json:"image_url"`
	Region           *string `json:"region"`
	Genre            *string `json:"genre"`
	MonthlyListeners *int64  `json:"monthly_listeners"`
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	filter := store.ArtistFilter{
		Genre:  r.URL.Query().Get("genre"),
		Region: r.URL.Query().Get("region"),
		Skip:   queryInt(r, "skip", 0, 0, 1<<31-1),
		Limit:  queryInt(r, "limit", 100, 1, 1000),
	}

	artists, err := s.artists.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if artists == nil {
		artists = []models.Artist{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleArtistSongs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	skip := queryInt(r, "skip", 0, 0, 1<<31-1)
	limit := queryInt(r, "limit", 100, 1, 1000)

	songs, err := s.artists.Songs(r.Context(), id, skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	artist, err := s.artists.Create(r.Context(), models.Artist{
		Name:             req.Name,
		Bio:              req.Bio,
		ImageURL:         req.ImageURL,
		Region:           req.Region,
		Genre:            req.Genre,
		MonthlyListeners: req.MonthlyListeners,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	var req artistPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	artist, err := s.artists.Update(r.Context(), id, store.ArtistPatch{
		Name:             req.Name,
		Bio:              req.Bio,
		ImageURL:         req.ImageURL,
		Region:           req.Region,
		Genre:            req.Genre,
		MonthlyListeners: req.MonthlyListeners,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	if err := s.artists.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
