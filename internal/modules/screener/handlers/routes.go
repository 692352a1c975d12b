package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all screener routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/screen", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/", h.HandleRun)
		r.Post("/regime", h.HandleRegime)
	})
}
