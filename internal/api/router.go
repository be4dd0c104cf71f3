package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Statement-Analyzer/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/config"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	reportService *service.ReportService,
	systemService *service.SystemService,
	cfg *config.Config,
	log *logrus.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		reportHandler := handlers.NewReportHandler(reportService, cfg.Server.MaxUploadSize, log)
		r.Post("/report", reportHandler.Generate)

		referenceHandler := handlers.NewReferenceHandler(reportService)
		r.Get("/reference", referenceHandler.Reference)
	})

	return r
}
