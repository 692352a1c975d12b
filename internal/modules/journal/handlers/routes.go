package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all journal routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/journal", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/add", h.HandleAdd)
		r.Post("/analyze", h.HandleAnalyze)
		r.Delete("/delete/{id}", h.HandleDelete)

		// Client-side derivations
		r.Get("/mood", h.HandleMood)
		r.Get("/calendar", h.HandleCalendar)
		r.Get("/insights", h.HandleInsights)
	})
}
