package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// writeDomainError maps the failure taxonomy onto HTTP statuses. Only the
// short reason string leaves the process.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoMatch):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrTransport):
		status = http.StatusBadGateway
	}
	writeError(w, status, err.Error())
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// requestLogger returns a child logger tagged with a correlation id for this
// request.
func (h *Handler) requestLogger(r *http.Request) *log.Logger {
	return h.logger.With("request_id", uuid.NewString(), "path", r.URL.Path)
}
