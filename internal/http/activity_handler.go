package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type ActivityHandler struct {
	service domain.ActivityServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewActivityHandler(service domain.ActivityServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *ActivityHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/activities.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/activities.create", requireAuth(http.HandlerFunc(h.handleCreate)))
}

func (h *ActivityHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	contactID := r.URL.Query().Get("contact_id")
	if contactID == "" {
		WriteJSONError(w, "contact_id is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteJSONError(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	activities, err := h.service.ListByContact(r.Context(), user.TenantID, contactID, limit)
	if err != nil {
		h.writeActivityError(w, err, "Failed to list activities")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}

func (h *ActivityHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	var req domain.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	activity, err := h.service.Create(r.Context(), user.TenantID, &req, user.ID)
	if err != nil {
		h.writeActivityError(w, err, "Failed to create activity")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"activity": activity,
	})
}

func (h *ActivityHandler) writeActivityError(w http.ResponseWriter, err error, logMsg string) {
	var contactNotFound *domain.ErrContactNotFound
	if errors.As(err, &contactNotFound) {
		WriteJSONError(w, "Contact not found", http.StatusNotFound)
		return
	}
	h.logger.WithField("error", err.Error()).Error(logMsg)
	WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
}
