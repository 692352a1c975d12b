package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all backtest routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/backtest", func(r chi.Router) {
		r.Post("/run", h.HandleRun)
		r.Get("/check", h.HandleCheck)
	})

	// Trade-history audit shares the adapter with backtests
	r.Post("/analyze", h.HandleAnalyze)
}
