package api

import (
	"net/http"

	"github.com/tripweave/tripweave/internal/auth"
	"github.com/tripweave/tripweave/internal/consolidate"
	"github.com/tripweave/tripweave/internal/extraction"
	"log/slog"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, consolidator *consolidate.Consolidator, extractor extraction.Extractor, store ItineraryStore, observer ConsolidationObserver, authConfig auth.Config, logger *slog.Logger) {
	handler := NewHandler(consolidator, extractor, store, observer, logger)
	authHandler := NewAuthHandler(authConfig, logger)

	authMiddleware := auth.AuthMiddleware(authConfig)

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		authMiddleware(http.HandlerFunc(authHandler.ValidateToken)).ServeHTTP(w, r)
	})

	// Stateless consolidation (public)
	mux.HandleFunc("/api/itineraries/consolidate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			writePreflight(w, "POST, OPTIONS")
			return
		}
		handler.ConsolidateHandler(w, r)
	})

	// Stored itineraries (writes require auth, reads are public)
	mux.HandleFunc("/api/itineraries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			writePreflight(w, "GET, POST, OPTIONS")
			return
		}

		switch r.Method {
		case http.MethodGet:
			handler.ListItinerariesHandler(w, r)
		case http.MethodPost:
			authMiddleware(http.HandlerFunc(handler.CreateItineraryHandler)).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/itineraries/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/itineraries/" {
			http.NotFound(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			writePreflight(w, "GET, OPTIONS")
			return
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.GetItineraryHandler(w, r)
	})

	// Document extraction (admin only)
	mux.HandleFunc("/api/extract", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			writePreflight(w, "POST, OPTIONS")
			return
		}
		authMiddleware(http.HandlerFunc(handler.ExtractHandler)).ServeHTTP(w, r)
	})

	mux.HandleFunc("/healthz", handler.HealthzHandler)

	// CORS preflight fallback
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			writePreflight(w, "GET, POST, PUT, DELETE, OPTIONS")
			return
		}
		http.NotFound(w, r)
	})
}

func writePreflight(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusOK)
}
