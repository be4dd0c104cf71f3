package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
)

// SystemHandler serves health and version information.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                `json:"status"`
	Database  string                `json:"database"`
	Reference model.ReferenceStatus `json:"reference"`
	Prices    string                `json:"prices"`
	Error     string                `json:"error,omitempty"`
}

// Health reports database connectivity together with the size of the active
// reference snapshot and whether market prices are looked up.
//
// Endpoint: GET /api/system/health
// Response: 200 OK, or 503 Service Unavailable when the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Reference: h.systemService.ReferenceStatus(),
		Prices:    "disabled",
	}
	if h.systemService.PricesEnabled() {
		response.Prices = "enabled"
	}

	if err := h.systemService.CheckHealth(); err != nil {
		response.Status = "unhealthy"
		response.Database = "disconnected"
		response.Error = err.Error()
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	respondJSON(w, http.StatusOK, response)
}

// Version returns the application version and the applied reference schema
// version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with model.VersionInfo
// Error: 500 Internal Server Error if the schema version cannot be read
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	info, err := h.systemService.CheckVersion()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, info)
}
