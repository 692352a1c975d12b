// Package handlers provides HTTP handlers for the position sizing calculator.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/risk"
)

// Handler handles risk HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "risk").Logger(),
	}
}

// HandlePositionSize handles POST /api/risk/position-size
//
// The browser calls this on every input change; the response is the complete
// derived state for that snapshot, so the UI never renders a stale mix.
func (h *Handler) HandlePositionSize(w http.ResponseWriter, r *http.Request) {
	var input risk.SizingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := risk.Calculate(input)

	response := map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp":           time.Now().Format(time.RFC3339),
			"concentration_limit": risk.ConcentrationLimit,
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
