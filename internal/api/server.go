// Package api provides the HTTP server for Kopalnia Wiedzy.
// It exposes a JSON REST API over the progression engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/app/progression"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// Server is the Kopalnia HTTP API server.
type Server struct {
	engine         *progression.Engine
	corsOrigins    []string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(engine *progression.Engine, corsOrigins []string) *Server {
	return &Server{engine: engine, corsOrigins: corsOrigins}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/learners", s.handleRegister)
		r.Route("/learners/{id}", func(r chi.Router) {
			r.Get("/", s.handleProfile)
			r.Post("/tasks/{taskID}/complete", s.handleCompleteTask)
			r.Post("/activity", s.handleActivity)
			r.Get("/challenge", s.handleChallenge)
			r.Post("/claims", s.handleClaim)
			r.Get("/claims", s.handleClaimStatus)
			r.Get("/unlocks", s.handleUnlocks)
			r.Post("/class", s.handleJoinClass)
		})

		r.Get("/challenge", s.handleGlobalChallenge)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/hall-of-fame", s.handleHallOfFame)
		r.Post("/classes", s.handleCreateClass)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLearnerNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrCorridorNotFound),
		errors.Is(err, domain.ErrClassNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidLearner),
		errors.Is(err, domain.ErrUnknownReward),
		errors.Is(err, domain.ErrInvalidPeriodKey),
		errors.Is(err, domain.ErrEmptyPool):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrMilestoneNotReached),
		errors.Is(err, domain.ErrNotEligible):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for browser clients.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	origin := "*"
	if len(s.corsOrigins) > 0 {
		origin = strings.Join(s.corsOrigins, ", ")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
