// Package main is the entry point for the Tradescope dashboard gateway.
// The gateway fronts the analytics backend, owns the client-side
// derivations (backtest normalization, drawdown, position sizing, journal
// aggregation, regime classification) and serves chart-ready JSON view
// models to the browser.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dkoutsos/tradescope/internal/clientdata"
	"github.com/dkoutsos/tradescope/internal/clients/analytics"
	"github.com/dkoutsos/tradescope/internal/config"
	"github.com/dkoutsos/tradescope/internal/modules/backtest"
	backtesthandlers "github.com/dkoutsos/tradescope/internal/modules/backtest/handlers"
	"github.com/dkoutsos/tradescope/internal/modules/dashboard"
	dashboardhandlers "github.com/dkoutsos/tradescope/internal/modules/dashboard/handlers"
	"github.com/dkoutsos/tradescope/internal/modules/feedback"
	feedbackhandlers "github.com/dkoutsos/tradescope/internal/modules/feedback/handlers"
	"github.com/dkoutsos/tradescope/internal/modules/journal"
	journalhandlers "github.com/dkoutsos/tradescope/internal/modules/journal/handlers"
	"github.com/dkoutsos/tradescope/internal/modules/portfolio"
	portfoliohandlers "github.com/dkoutsos/tradescope/internal/modules/portfolio/handlers"
	riskhandlers "github.com/dkoutsos/tradescope/internal/modules/risk/handlers"
	"github.com/dkoutsos/tradescope/internal/modules/screener"
	screenerhandlers "github.com/dkoutsos/tradescope/internal/modules/screener/handlers"
	"github.com/dkoutsos/tradescope/internal/scheduler"
	"github.com/dkoutsos/tradescope/internal/server"
	"github.com/dkoutsos/tradescope/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Str("backend_url", cfg.BackendURL).Msg("Starting Tradescope gateway")

	// Response cache. The gateway stays fully functional without it.
	var cache *clientdata.Repository
	var cron *scheduler.Scheduler
	if cfg.CacheEnabled {
		db, err := sql.Open("sqlite3", filepath.Join(cfg.DataDir, "client_data.db"))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open client data database")
		}
		defer db.Close()

		if err := clientdata.InitSchema(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize client data schema")
		}
		cache = clientdata.NewRepository(db)
		log.Info().Str("data_dir", cfg.DataDir).Msg("Response cache initialized")

		cron = scheduler.New(log)
		if err := cron.AddJob("@hourly", clientdata.NewCleanupJob(cache, log)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule cache cleanup")
		}
		cron.Start()
		defer cron.Stop()
	}

	client := analytics.NewClient(cfg.BackendURL, log)

	// cache is a typed nil when disabled; pass an untyped nil instead so
	// the services' nil checks work.
	var dashboardCache dashboard.Cache
	var screenerCache screener.Cache
	var journalCache journal.Cache
	var portfolioCache portfolio.Cache
	if cache != nil {
		dashboardCache = cache
		screenerCache = cache
		journalCache = cache
		portfolioCache = cache
	}

	handlers := server.Handlers{
		Dashboard: dashboardhandlers.NewHandler(dashboard.NewService(client, dashboardCache, log), log),
		Backtest:  backtesthandlers.NewHandler(backtest.NewService(client, cfg.StartingCapital, log), log),
		Screener:  screenerhandlers.NewHandler(screener.NewService(client, screenerCache, log), log),
		Journal:   journalhandlers.NewHandler(journal.NewService(client, journalCache, log), log),
		Portfolio: portfoliohandlers.NewHandler(portfolio.NewService(client, portfolioCache, log), log),
		Risk:      riskhandlers.NewHandler(log),
		Feedback:  feedbackhandlers.NewHandler(feedback.NewService(client, log), log),
	}

	srv := server.New(cfg, handlers, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Shutdown complete")
}
