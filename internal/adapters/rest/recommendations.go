package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
)

type promptRequest struct {
	Prompt    string `json:"prompt"`
	UserToken string `json:"userToken"`
}

type promptResponse struct {
	Success bool `json:"success"`
	services.PromptRecommendation
}

// PromptRecommendations handles POST /recommendations/prompt.
func (h *Handler) PromptRecommendations(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	logger := h.requestLogger(r)
	logger.Info("prompt recommendations requested")

	rec, err := h.svc.RecommendByPrompt(r.Context(), req.Prompt, req.UserToken)
	if err != nil {
		logger.Warn("prompt recommendations failed", "err", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, promptResponse{Success: true, PromptRecommendation: rec})
}

type seedRequest struct {
	SongID    string `json:"songId"`
	UserToken string `json:"userToken"`
}

type seedResponse struct {
	Success bool `json:"success"`
	services.SeedArtistRecommendation
}

// SeedRecommendations handles POST /recommendations.
func (h *Handler) SeedRecommendations(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	logger := h.requestLogger(r)
	logger.Info("seed recommendations requested", "song", req.SongID)

	rec, err := h.svc.RecommendBySeedArtists(r.Context(), req.SongID, req.UserToken)
	if err != nil {
		logger.Warn("seed recommendations failed", "err", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, seedResponse{Success: true, SeedArtistRecommendation: rec})
}

type tempoResponse struct {
	Success bool `json:"success"`
	services.TempoRecommendation
}

// TempoRecommendations handles POST /recommendations/tempo.
func (h *Handler) TempoRecommendations(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	logger := h.requestLogger(r)
	logger.Info("tempo recommendations requested", "song", req.SongID)

	rec, err := h.svc.RecommendByTempo(r.Context(), req.SongID, req.UserToken)
	if err != nil {
		logger.Warn("tempo recommendations failed", "err", err)
		writeDomainError(w, err)
		return
	}

	if h.prefetch != nil {
		for _, t := range rec.Tracks {
			h.prefetch.Submit(t.ID)
		}
	}

	writeJSON(w, http.StatusOK, tempoResponse{Success: true, TempoRecommendation: rec})
}

type searchResponse struct {
	Success bool           `json:"success"`
	Songs   []domain.Track `json:"songs"`
}

// SearchTracks handles GET /search?q=...&limit=...
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 50")
			return
		}
		limit = parsed
	}

	songs, err := h.svc.SearchTracks(r.Context(), q, limit)
	if err != nil {
		h.requestLogger(r).Warn("track search failed", "err", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Success: true, Songs: songs})
}
