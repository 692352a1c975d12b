package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all feedback routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback", h.HandleSubmit)
}
