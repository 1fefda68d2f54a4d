package main

import (
	"net/http"
	"strings"

	"playlistke/internal/app/analytics"
	"playlistke/internal/app/artists"
	"playlistke/internal/app/charts"
	"playlistke/internal/app/playlists"
	"playlistke/internal/app/songs"
	"playlistke/internal/app/users"
	"playlistke/internal/httpapi"
	"playlistke/internal/store"
	"playlistke/internal/token"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userSvc := users.New(dataStore, tokens)
	songSvc := songs.New(dataStore)
	artistSvc := artists.New(dataStore)
	playlistSvc := playlists.New(dataStore)
	chartSvc := charts.New(dataStore)
	analyticsSvc := analytics.New(dataStore)

	handler := httpapi.New(userSvc, songSvc, artistSvc, playlistSvc, chartSvc, analyticsSvc).Routes()
	handler = httpapi.RequestLogging(handler)
	handler = httpapi.Recovery(handler)

	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
