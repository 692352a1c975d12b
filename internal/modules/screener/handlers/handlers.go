// Package handlers provides HTTP handlers for screener operations.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/screener"
)

// Handler handles screener HTTP requests
type Handler struct {
	service *screener.Service
	log     zerolog.Logger
}

// NewHandler creates a new screener handler
func NewHandler(service *screener.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "screener").Logger(),
	}
}

// HandleGet handles GET /api/screen
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.log.Warn().Err(err).Msg("Screen fetch failed")
		h.writeDegraded(w, "Screener results unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{"results": result})
}

// HandleRun handles POST /api/screen
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), body)
	if err != nil {
		h.log.Warn().Err(err).Msg("Screen run failed")
		h.writeDegraded(w, "Screener results unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{"results": result})
}

// RegimeRequest carries the close history the chart already holds.
type RegimeRequest struct {
	Closes []float64 `json:"closes"`
}

// HandleRegime handles POST /api/screen/regime
//
// The regime is a purely client-side derivation over price history the UI
// already has, so the backend is never involved.
func (h *Handler) HandleRegime(w http.ResponseWriter, r *http.Request) {
	var req RegimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.writeData(w, screener.ClassifyRegime(req.Closes))
}

func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeDegraded(w http.ResponseWriter, note string, err error) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": nil,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"note":      note,
			"error":     err.Error(),
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
