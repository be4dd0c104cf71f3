package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
)

// ReferenceHandler exposes the reference tables
type ReferenceHandler struct {
	reportService *service.ReportService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(reportService *service.ReportService) *ReferenceHandler {
	return &ReferenceHandler{
		reportService: reportService,
	}
}

// Reference returns the split events, exchange rates and conversion factors
// currently applied to reports.
//
// Endpoint: GET /api/reference
// Response: 200 OK with model.ReferenceData
func (h *ReferenceHandler) Reference(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.reportService.Reference())
}
