package http

import (
	"net/http"
	"strconv"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type AuditHandler struct {
	service domain.AuditServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewAuditHandler(service domain.AuditServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *AuditHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAdmin := h.auth.RequireRole(domain.RoleAdmin)

	mux.Handle("/api/audit.list", requireAdmin(http.HandlerFunc(h.handleList)))
}

func (h *AuditHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	params := domain.ListAuditParams{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entity_type"),
	}
	for name, dest := range map[string]*int{
		"limit":  &params.Limit,
		"offset": &params.Offset,
	} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteJSONError(w, name+" must be an integer", http.StatusBadRequest)
			return
		}
		*dest = parsed
	}

	events, err := h.service.List(r.Context(), user.TenantID, params)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list audit events")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}
