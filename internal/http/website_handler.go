package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type WebsiteHandler struct {
	service domain.WebsiteServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewWebsiteHandler(service domain.WebsiteServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *WebsiteHandler {
	return &WebsiteHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *WebsiteHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/websites.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/websites.create", requireAuth(http.HandlerFunc(h.handleCreate)))
}

func (h *WebsiteHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	websites, err := h.service.List(r.Context(), user.TenantID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list websites")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"websites": websites,
	})
}

func (h *WebsiteHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	var req domain.CreateWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	website, err := h.service.Create(r.Context(), user.TenantID, &req)
	if err != nil {
		var exists *domain.ErrWebsiteExists
		if errors.As(err, &exists) {
			WriteJSONError(w, exists.Message, http.StatusConflict)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to create website")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"website": website,
	})
}
