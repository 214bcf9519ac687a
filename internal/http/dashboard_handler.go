package http

import (
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type DashboardHandler struct {
	service domain.DashboardServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewDashboardHandler(service domain.DashboardServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/dashboard.stats", requireAuth(http.HandlerFunc(h.handleStats)))
}

func (h *DashboardHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	stats, err := h.service.GetStats(r.Context(), user.TenantID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to compute dashboard stats")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
