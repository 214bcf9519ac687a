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

type ContactHandler struct {
	service domain.ContactServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

func NewContactHandler(service domain.ContactServiceInterface, auth *middleware.AuthMiddleware, logger logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/contacts.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/contacts.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/contacts.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/contacts.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/contacts.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/contacts.summary", requireAuth(http.HandlerFunc(h.handleSummary)))
}

func (h *ContactHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	query := r.URL.Query()
	params := domain.ListContactsParams{
		Status: domain.ContactStatus(query.Get("status")),
		Search: query.Get("search"),
	}
	params.Limit, _ = strconv.Atoi(query.Get("limit"))
	params.Offset, _ = strconv.Atoi(query.Get("offset"))

	if params.Status != "" && !params.Status.IsValid() {
		WriteJSONError(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	contacts, err := h.service.List(r.Context(), user.TenantID, params)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list contacts")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
	})
}

func (h *ContactHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	contact, err := h.service.Get(r.Context(), user.TenantID, id)
	if err != nil {
		h.writeContactError(w, err, "Failed to get contact")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contact": contact,
	})
}

func (h *ContactHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	var req domain.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, created, err := h.service.ResolveOrCreate(r.Context(), user.TenantID, &req, user.ID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to create contact")
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]interface{}{
		"id":      id,
		"created": created,
	})
}

func (h *ContactHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req domain.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	contact, err := h.service.Update(r.Context(), user.TenantID, id, &req)
	if err != nil {
		h.writeContactError(w, err, "Failed to update contact")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contact": contact,
	})
}

func (h *ContactHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
		h.writeContactError(w, err, "Failed to delete contact")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *ContactHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := domain.UserFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	summary, err := h.service.Summary(r.Context(), user.TenantID, id)
	if err != nil {
		h.writeContactError(w, err, "Failed to build contact summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// writeContactError maps a contact lookup failure. Cross-tenant access and
// a genuinely missing contact produce the same 404.
func (h *ContactHandler) writeContactError(w http.ResponseWriter, err error, logMsg string) {
	var notFound *domain.ErrContactNotFound
	if errors.As(err, &notFound) {
		WriteJSONError(w, "Contact not found", http.StatusNotFound)
		return
	}
	h.logger.WithField("error", err.Error()).Error(logMsg)
	WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
}
