// Package httpapi wires HTTP handlers to the underlying services.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"playlistke/internal/app/users"
	"playlistke/internal/models"
	"playlistke/internal/store"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, email, name, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (users.Login, error)
	CurrentUser(ctx context.Context, tokenString string) (models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, patch store.UserPatch) (models.User, error)
}

// SongService coordinates song catalog operations.
type SongService interface {
	List(ctx context.Context, filter store.SongFilter) ([]models.Song, error)
	Trending(ctx context.Context, limit int) ([]models.Song, error)
	NewReleases(ctx context.Context, limit int) ([]models.Song, error)
	Get(ctx context.Context, id int64) (models.Song, error)
	Create(ctx context.Context, song models.Song) (models.Song, error)
	Update(ctx context.Context, id int64, patch store.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService coordinates artist catalog operations.
type ArtistService interface {
	List(ctx context.Context, filter store.ArtistFilter) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (models.Artist, error)
	Songs(ctx context.Context, artistID int64, skip, limit int) ([]models.Song, error)
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, patch store.ArtistPatch) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// PlaylistService coordinates playlist operations.
type PlaylistService interface {
	ListPublic(ctx context.Context, skip, limit int) ([]models.Playlist, error)
	ListByUser(ctx context.Context, viewerID, ownerID int64, skip, limit int) ([]models.Playlist, error)
	Get(ctx context.Context, id int64) (models.PlaylistDetail, error)
	Create(ctx context.Context, userID int64, playlist models.Playlist) (models.Playlist, error)
	Update(ctx context.Context, userID, id int64, patch store.PlaylistPatch) (models.Playlist, error)
	Delete(ctx context.Context, userID, id int64) error
	AddSong(ctx context.Context, userID, playlistID, songID int64, position int) (models.PlaylistDetail, error)
	RemoveSong(ctx context.Context, userID, playlistID, songID int64) error
}

// ChartService coordinates chart resolution and recording.
type ChartService interface {
	List(ctx context.Context, skip, limit int) ([]models.Chart, error)
	Weekly(ctx context.Context, week, year int, region string) (models.WeeklyChart, error)
	Get(ctx context.Context, id int64) (models.ChartDetail, error)
	SongHistory(ctx context.Context, songID int64, limit int) ([]models.ChartEntry, error)
	Create(ctx context.Context, chart models.Chart) (models.Chart, error)
	AddEntry(ctx context.Context, entry models.ChartEntry) (models.ChartEntry, error)
}

// AnalyticsService computes the analytics reports.
type AnalyticsService interface {
	Overview(ctx context.Context) (models.AnalyticsOverview, error)
	Regions(ctx context.Context) ([]models.RegionAnalytics, error)
	Song(ctx context.Context, songID int64) (models.SongAnalytics, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	songs     SongService
	artists   ArtistService
	playlists PlaylistService
	charts    ChartService
	analytics AnalyticsService
}

// New configures a Server with the given services.
func New(
	users UserService,
	songs SongService,
	artists ArtistService,
	playlists PlaylistService,
	charts ChartService,
	analytics AnalyticsService,
) *Server {
	return &Server{
		users:     users,
		songs:     songs,
		artists:   artists,
		playlists: playlists,
		charts:    charts,
		analytics: analytics,
	}
}

// Routes exposes the HTTP handlers for the API surface.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/me", s.handleGetMe)
	mux.HandleFunc("PUT /api/v1/auth/me", s.handleUpdateMe)

	// User routes
	mux.HandleFunc("GET /api/v1/users/{id}", s.handleGetUser)
	mux.HandleFunc("GET /api/v1/users/{id}/playlists", s.handleUserPlaylists)

	// Song routes
	mux.HandleFunc("GET /api/v1/songs", s.handleListSongs)
	mux.HandleFunc("GET /api/v1/songs/trending", s.handleTrendingSongs)
	mux.HandleFunc("GET /api/v1/songs/new-releases", s.handleNewReleases)
	mux.HandleFunc("GET /api/v1/songs/{id}", s.handleGetSong)
	mux.HandleFunc("POST /api/v1/songs", s.handleCreateSong)
	mux.HandleFunc("PUT /api/v1/songs/{id}", s.handleUpdateSong)
	mux.HandleFunc("DELETE /api/v1/songs/{id}", s.handleDeleteSong)

	// Artist routes
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("GET /api/v1/artists/{id}/songs", s.handleArtistSongs)
	mux.HandleFunc("POST /api/v1/artists", s.handleCreateArtist)
	mux.HandleFunc("PUT /api/v1/artists/{id}", s.handleUpdateArtist)
	mux.HandleFunc("DELETE /api/v1/artists/{id}", s.handleDeleteArtist)

	// Playlist routes
	mux.HandleFunc("GET /api/v1/playlists", s.handleListPlaylists)
	mux.HandleFunc("GET /api/v1/playlists/user/{id}", s.handleUserPlaylists)
	mux.HandleFunc("GET /api/v1/playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("POST /api/v1/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("PUT /api/v1/playlists/{id}", s.handleUpdatePlaylist)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /api/v1/playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/songs/{songId}", s.handleRemovePlaylistSong)

	// Chart routes
	mux.HandleFunc("GET /api/v1/charts", s.handleListCharts)
	mux.HandleFunc("GET /api/v1/charts/weekly", s.handleWeeklyChart)
	mux.HandleFunc("GET /api/v1/charts/history/{songId}", s.handleChartHistory)
	mux.HandleFunc("GET /api/v1/charts/{id}", s.handleGetChart)
	mux.HandleFunc("POST /api/v1/charts", s.handleCreateChart)
	mux.HandleFunc("POST /api/v1/charts/{id}/entries", s.handleAddChartEntry)

	// Analytics routes
	mux.HandleFunc("GET /api/v1/analytics/overview", s.handleAnalyticsOverview)
	mux.HandleFunc("GET /api/v1/analytics/regions", s.handleAnalyticsRegions)
	mux.HandleFunc("GET /api/v1/analytics/songs/{id}", s.handleSongAnalytics)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// currentUser resolves the request's bearer token to an active account.
func (s *Server) currentUser(r *http.Request) (models.User, error) {
	tokenString := parseBearerToken(r.Header.Get("Authorization"))
	if tokenString == "" {
		return models.User{}, store.ErrUnauthorized
	}
	return s.users.CurrentUser(r.Context(), tokenString)
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUnauthorized),
		errors.Is(err, store.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrArtistNotFound),
		errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrPlaylistNotFound),
		errors.Is(err, store.ErrChartNotFound),
		errors.Is(err, store.ErrSongNotInPlaylist):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrEmailTaken),
		errors.Is(err, store.ErrAccountDisabled):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// queryInt reads an integer query parameter, falling back when absent or
// malformed, and clamping to [min, max].
func queryInt(r *http.Request, key string, fallback, min, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
