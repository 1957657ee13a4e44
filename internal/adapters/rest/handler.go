// Package rest is the HTTP interface of the recommendation engine. It
// decodes requests, delegates to the core service and serializes the
// uniform success/error shapes.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/services"
	"github.com/vibecheck-labs/vibecheck/internal/worker"
)

// Handler manages the HTTP interface for the application.
type Handler struct {
	svc      *services.Recommender
	prefetch *worker.Pool
	logger   *log.Logger
	router   *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. prefetch may
// be nil, in which case tempo results are not warmed in the background.
func NewHandler(svc *services.Recommender, prefetch *worker.Pool, logger *log.Logger) *Handler {
	h := &Handler{
		svc:      svc,
		prefetch: prefetch,
		logger:   logger,
		router:   http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("GET /search", h.SearchTracks)
	h.router.HandleFunc("POST /recommendations/prompt", h.PromptRecommendations)
	h.router.HandleFunc("POST /recommendations", h.SeedRecommendations)
	h.router.HandleFunc("POST /recommendations/tempo", h.TempoRecommendations)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
