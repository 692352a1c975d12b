// Package handlers provides HTTP handlers for portfolio risk analysis.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

type analyzeRequest struct {
	Positions string `json:"positions"`
}

// HandleAnalyze handles POST /api/portfolio/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Analyze(r.Context(), req.Positions)
	if errors.Is(err, portfolio.ErrNoValidPositions) {
		// Input problem, not a failure: render the inline message.
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": nil,
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"note":      portfolio.ErrNoPositions,
			},
		})
		return
	}
	if err != nil {
		h.log.Warn().Err(err).Msg("Portfolio analysis failed")
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": nil,
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"note":      "Portfolio analysis unavailable",
				"error":     err.Error(),
			},
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": report,
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
