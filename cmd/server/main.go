package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/api"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/app"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/config"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/logging"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the reference database and load the first snapshot
	db, store, err := app.OpenReference(ctx, cfg.Reference.DBPath, log)
	if err != nil {
		log.Fatalf("Failed to open reference database: %v", err)
	}
	defer db.Close()

	scheduler, err := store.Schedule(ctx, cfg.Reference.RefreshSchedule)
	if err != nil {
		log.Fatalf("Failed to schedule reference reload: %v", err)
	}
	defer scheduler.Stop()

	prices, closePrices, err := app.PriceLookup(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to set up price lookups: %v", err)
	}
	defer closePrices()

	// Create services
	reportService := service.NewReportService(store, prices, log)
	systemService := service.NewSystemService(db, store, prices != nil)

	// Create router
	router := api.NewRouter(reportService, systemService, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Server.Addr,
			"version": version.Version,
		}).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
