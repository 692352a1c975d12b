// Package server provides the HTTP server and routing for the Tradescope
// dashboard gateway.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/dkoutsos/tradescope/internal/config"
	backtesthandlers "github.com/dkoutsos/tradescope/internal/modules/backtest/handlers"
	dashboardhandlers "github.com/dkoutsos/tradescope/internal/modules/dashboard/handlers"
	feedbackhandlers "github.com/dkoutsos/tradescope/internal/modules/feedback/handlers"
	journalhandlers "github.com/dkoutsos/tradescope/internal/modules/journal/handlers"
	portfoliohandlers "github.com/dkoutsos/tradescope/internal/modules/portfolio/handlers"
	riskhandlers "github.com/dkoutsos/tradescope/internal/modules/risk/handlers"
	screenerhandlers "github.com/dkoutsos/tradescope/internal/modules/screener/handlers"
)

// Handlers collects the module handlers the server mounts under /api.
type Handlers struct {
	Dashboard *dashboardhandlers.Handler
	Backtest  *backtesthandlers.Handler
	Screener  *screenerhandlers.Handler
	Journal   *journalhandlers.Handler
	Portfolio *portfoliohandlers.Handler
	Risk      *riskhandlers.Handler
	Feedback  *feedbackhandlers.Handler
}

// Server represents the gateway HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    *config.Config
}

// New creates a new HTTP server
func New(cfg *config.Config, handlers Handlers, log zerolog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes(handlers)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !s.cfg.DevMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(handlers Handlers) {
	s.router.Get("/health", s.handleHealth)

	systemHandlers := NewSystemHandlers(s.log)

	s.router.Route("/api", func(r chi.Router) {
		handlers.Dashboard.RegisterRoutes(r)
		handlers.Backtest.RegisterRoutes(r)
		handlers.Screener.RegisterRoutes(r)
		handlers.Journal.RegisterRoutes(r)
		handlers.Portfolio.RegisterRoutes(r)
		handlers.Risk.RegisterRoutes(r)
		handlers.Feedback.RegisterRoutes(r)

		r.Get("/health", s.handleHealth)
		r.Get("/system/health", systemHandlers.HandleSystemHealth)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
