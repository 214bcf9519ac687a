package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type WebhookHandler struct {
	service domain.WebhookServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewWebhookHandler(service domain.WebhookServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/webhooks.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/webhooks.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/webhooks.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
}

func (h *WebhookHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	webhooks, err := h.service.List(r.Context(), user.TenantID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list webhooks")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"webhooks": webhooks,
	})
}

func (h *WebhookHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	var req domain.CreateWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	webhook, err := h.service.Create(r.Context(), user.TenantID, &req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to create webhook")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"webhook": webhook,
	})
}

func (h *WebhookHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), user.TenantID, id); err != nil {
		var notFound *domain.ErrWebhookNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Webhook not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete webhook")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
