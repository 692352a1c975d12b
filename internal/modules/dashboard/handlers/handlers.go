// Package handlers provides HTTP handlers for the dashboard view.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/dashboard"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *dashboard.Service
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *dashboard.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleSummary handles GET /api/dashboard
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Summary(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to fetch dashboard summary")
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": nil,
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"note":      "Dashboard unavailable",
				"error":     err.Error(),
			},
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": view,
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
