// Package handlers provides HTTP handlers for journal operations.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/modules/journal"
)

// Handler handles journal HTTP requests
type Handler struct {
	service *journal.Service
	log     zerolog.Logger
}

// NewHandler creates a new journal handler
func NewHandler(service *journal.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "journal").Logger(),
	}
}

// HandleList handles GET /api/journal
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to list journal entries")
		h.writeDegraded(w, "Journal unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// HandleAdd handles POST /api/journal/add
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Add(r.Context(), body)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to add journal entry")
		http.Error(w, "Failed to add journal entry", http.StatusBadGateway)
		return
	}

	h.writeData(w, map[string]interface{}{"result": result})
}

// HandleDelete handles DELETE /api/journal/delete/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete journal entry")
		http.Error(w, "Failed to delete journal entry", http.StatusBadGateway)
		return
	}

	h.writeData(w, map[string]interface{}{"deleted": id})
}

// HandleAnalyze handles POST /api/journal/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Analyze(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Journal analysis failed")
		h.writeDegraded(w, "Journal analysis unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{"analysis": result})
}

// HandleMood handles GET /api/journal/mood
func (h *Handler) HandleMood(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Mood(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to build mood breakdown")
		h.writeDegraded(w, "Mood data unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{"mood": totals})
}

// HandleCalendar handles GET /api/journal/calendar
func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.CalendarView(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to build calendar heatmap")
		h.writeDegraded(w, "Calendar data unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{
		"days":        days,
		"window_days": journal.CalendarWindowDays,
	})
}

// HandleInsights handles GET /api/journal/insights
func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to build emotion insights")
		h.writeDegraded(w, "Insights unavailable", err)
		return
	}

	h.writeData(w, map[string]interface{}{"insights": insights})
}

func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeDegraded renders an empty placeholder payload for read views whose
// backend call failed; nothing in this layer is fatal.
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
