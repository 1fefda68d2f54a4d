package httpapi

import (
	"net/http"

	"playlistke/internal/models"
)

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUserPlaylists serves both /users/{id}/playlists and
// /playlists/user/{id}. The caller must be authenticated; non-owners only
// see public playlists.
func (s *Server) handleUserPlaylists(w http.ResponseWriter, r *http.Request) {
	viewer, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	ownerID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	skip := queryInt(r, "skip", 0, 0, 1<<31-1)
	limit := queryInt(r, "limit", 100, 1, 1000)

	playlists, err := s.playlists.ListByUser(r.Context(), viewer.ID, ownerID, skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	writeJSON(w, http.StatusOK, playlists)
}
