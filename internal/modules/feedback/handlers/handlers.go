// Package handlers provides HTTP handlers for feedback submission.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/feedback"
)

// Handler handles feedback HTTP requests
type Handler struct {
	service *feedback.Service
	log     zerolog.Logger
}

// NewHandler creates a new feedback handler
func NewHandler(service *feedback.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "feedback").Logger(),
	}
}

// HandleSubmit handles POST /api/feedback
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 || !json.Valid(body) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := h.service.Submit(r.Context(), body)
	if err != nil {
		http.Error(w, "Failed to submit feedback", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": receipt,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
