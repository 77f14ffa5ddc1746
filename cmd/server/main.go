// Package main is the entry point for the FiscalFundamentals API server.
// It serves financial-statement records from a hosted Supabase table to the
// frontend, with an in-process TTL cache in front of the remote store.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fiscal2/FiscalFundamentals/internal/clients/supabase"
	"github.com/Fiscal2/FiscalFundamentals/internal/config"
	"github.com/Fiscal2/FiscalFundamentals/internal/modules/financials"
	"github.com/Fiscal2/FiscalFundamentals/internal/modules/financials/handlers"
	"github.com/Fiscal2/FiscalFundamentals/internal/scheduler"
	"github.com/Fiscal2/FiscalFundamentals/internal/server"
	"github.com/Fiscal2/FiscalFundamentals/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting FiscalFundamentals API")

	// Wire dependencies: store client -> repository -> cache -> service -> handlers
	store := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, log)
	repo := financials.NewRepository(store, log)
	cache := financials.NewCache(cfg.CacheTTL)
	service := financials.NewService(repo, cache, log)
	handler := handlers.NewHandler(service, log)

	srv := server.New(server.Config{
		Log:      log,
		Config:   cfg,
		Handlers: handler,
	})

	// Optional cache warming on a cron schedule
	var sched *scheduler.Scheduler
	if cfg.CacheWarmSchedule != "" {
		sched = scheduler.New(log)
		if err := sched.AddJob(cfg.CacheWarmSchedule, scheduler.NewCacheWarmJob(service, log)); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.CacheWarmSchedule).Msg("Invalid cache warm schedule")
		}
		sched.Start()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	// Graceful shutdown with a bounded wait for in-flight requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
