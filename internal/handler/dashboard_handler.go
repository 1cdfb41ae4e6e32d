package handler

import (
	"net/http"

	"backoffice/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the dashboard screen.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /api/dashboard requests.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Load(r.Context())
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Telemetry handles GET /api/dashboard/telemetry requests.
func (h *DashboardHandler) Telemetry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Telemetry())
}
