// Package handlers provides HTTP handlers for backtest operations.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/backtest"
)

// Handler handles backtest HTTP requests
type Handler struct {
	service *backtest.Service
	log     zerolog.Logger
}

// NewHandler creates a new backtest handler
func NewHandler(service *backtest.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "backtest").Logger(),
	}
}

// HandleRun handles POST /api/backtest/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req backtest.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	view, err := h.service.Run(r.Context(), req)
	h.writeResult(w, view, err)
}

// HandleCheck handles GET /api/backtest/check
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	strategy := r.URL.Query().Get("strategy")

	view, err := h.service.Check(r.Context(), ticker, strategy)
	h.writeResult(w, view, err)
}

// HandleAnalyze handles POST /api/analyze (uploaded trade history audit)
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.Audit(r.Context(), body)
	h.writeResult(w, view, err)
}

// writeResult renders a backtest view, degrading to an empty "no results"
// payload instead of erroring when the backend gave nothing usable.
func (h *Handler) writeResult(w http.ResponseWriter, view *backtest.ResultView, err error) {
	if err != nil {
		h.log.Warn().Err(err).Msg("Backtest request failed")
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": nil,
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"note":      "Backtest results unavailable",
				"error":     err.Error(),
			},
		})
		return
	}

	if view == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": nil,
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"note":      "No results",
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
