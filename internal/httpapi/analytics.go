package httpapi

import (
	"net/http"

	"playlistke/internal/models"
)

func (s *Server) handleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	overview, err := s.analytics.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleAnalyticsRegions(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	regions, err := s.analytics.Regions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if regions == nil {
		regions = []models.RegionAnalytics{}
	}
	writeJSON(w, http.StatusOK, regions)
}

func (s *Server) handleSongAnalytics(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		writeServiceError(w, err)
		return
	}

	songID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	detail, err := s.analytics.Song(r.Context(), songID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
