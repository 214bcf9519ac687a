package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/pkg/logger"
)

type DealHandler struct {
	service domain.DealServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewDealHandler(service domain.DealServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *DealHandler {
	return &DealHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *DealHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/deals.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/deals.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/deals.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/deals.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
}

func (h *DealHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	deals, err := h.service.List(r.Context(), user.TenantID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list deals")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deals": deals,
	})
}

func (h *DealHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	var req domain.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	deal, err := h.service.Create(r.Context(), user.TenantID, &req, user.ID)
	if err != nil {
		h.writeDealError(w, err, "Failed to create deal")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"deal": deal,
	})
}

func (h *DealHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req domain.UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	deal, err := h.service.Update(r.Context(), user.TenantID, id, &req)
	if err != nil {
		h.writeDealError(w, err, "Failed to update deal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deal": deal,
	})
}

func (h *DealHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
		h.writeDealError(w, err, "Failed to delete deal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *DealHandler) writeDealError(w http.ResponseWriter, err error, logMsg string) {
	var dealNotFound *domain.ErrDealNotFound
	var contactNotFound *domain.ErrContactNotFound
	switch {
	case errors.As(err, &dealNotFound):
		WriteJSONError(w, "Deal not found", http.StatusNotFound)
	case errors.As(err, &contactNotFound):
		WriteJSONError(w, "Contact not found", http.StatusNotFound)
	default:
		h.logger.WithField("error", err.Error()).Error(logMsg)
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
