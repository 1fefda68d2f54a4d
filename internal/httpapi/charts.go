package httpapi

import (
	"encoding/json"
	"net/http"

	"playlistke/internal/models"
)

type chartRequest struct {
	Name   string `json:"name"`
	Week   int    `json:"week"`
	Year   int    `json:"year"`
	Region string `json:"region"`
}

type chartEntryRequest struct {
	SongID       int64  `json:"song_id"`
	Rank         int    `json:"rank"`
	PreviousRank *int   `json:"previous_rank"`
	Trend        string `json:"trend"`
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0, 0, 1<<31-1)
	limit := queryInt(r, "limit", 100, 1, 1000)

	charts, err := s.charts.List(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if charts == nil {
		charts = []models.Chart{}
	}
	writeJSON(w, http.StatusOK, charts)
}

func (s *Server) handleWeeklyChart(w http.ResponseWriter, r *http.Request) {
	week := queryInt(r, "week", 0, 0, 1<<31-1)
	year := queryInt(r, "year", 0, 0, 1<<31-1)
	region := r.URL.Query().Get("region")

	chart, err := s.charts.Weekly(r.Context(), week, year, region)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid chart id"})
		return
	}

	chart, err := s.charts.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) handleChartHistory(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(r, "songId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}
	limit := queryInt(r, "limit", 50, 1, 500)

	entries, err := s.charts.SongHistory(r.Context(), songID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.ChartEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Name == "" || req.Week == 0 || req.Year == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, week and year are required"})
		return
	}

	chart, err := s.charts.Create(r.Context(), models.Chart{
		Name:   req.Name,
		Week:   req.Week,
		Year:   req.Year,
		Region: req.Region,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chart)
}

func (s *Server) handleAddChartEntry(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	chartID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid chart id"})
		return
	}

	var req chartEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.SongID == 0 || req.Rank == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "song_id and rank are required"})
		return
	}

	entry, err := s.charts.AddEntry(r.Context(), models.ChartEntry{
		ChartID:      chartID,
		SongID:       req.SongID,
		Rank:         req.Rank,
		PreviousRank: req.PreviousRank,
		Trend:        req.Trend,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
