package http

import (
	"encoding/json"
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type FormHandler struct {
	service domain.FormServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewFormHandler(service domain.FormServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *FormHandler {
	return &FormHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *FormHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/forms.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/forms.create", requireAuth(http.HandlerFunc(h.handleCreate)))
}

func (h *FormHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	forms, err := h.service.List(r.Context(), user.TenantID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list forms")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"forms": forms,
	})
}

func (h *FormHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	var req domain.CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	form, err := h.service.Create(r.Context(), user.TenantID, &req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to create form")
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"form": form,
	})
}
