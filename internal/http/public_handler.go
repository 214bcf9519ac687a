package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/internal/service"
	"github.com/minicrm/minicrm/pkg/logger"
)

// PublicHandler serves the unauthenticated ingestion surface: lead capture
// by tenant slug and the embedded form widget endpoints resolved by
// tracking id.
type PublicHandler struct {
	tenantRepo        domain.TenantRepository
	contactService    domain.ContactServiceInterface
	websiteService    domain.WebsiteServiceInterface
	formService       domain.FormServiceInterface
	submissionService domain.SubmissionServiceInterface
	originValidator   *service.OriginValidator
	rateLimit         *middleware.RateLimitMiddleware
	logger            logger.Logger
}

type PublicHandlerConfig struct {
	TenantRepository  domain.TenantRepository
	ContactService    domain.ContactServiceInterface
	WebsiteService    domain.WebsiteServiceInterface
	FormService       domain.FormServiceInterface
	SubmissionService domain.SubmissionServiceInterface
	OriginValidator   *service.OriginValidator
	RateLimit         *middleware.RateLimitMiddleware
	Logger            logger.Logger
}

func NewPublicHandler(cfg PublicHandlerConfig) *PublicHandler {
	return &PublicHandler{
		tenantRepo:        cfg.TenantRepository,
		contactService:    cfg.ContactService,
		websiteService:    cfg.WebsiteService,
		formService:       cfg.FormService,
		submissionService: cfg.SubmissionService,
		originValidator:   cfg.OriginValidator,
		rateLimit:         cfg.RateLimit,
		logger:            cfg.Logger,
	}
}

func (h *PublicHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/public/leads", h.rateLimit.Limit("public_leads")(http.HandlerFunc(h.handleLead)))
	mux.Handle("/public/forms/{form_id}", http.HandlerFunc(h.handleGetForm))
	mux.Handle("/public/submissions", http.HandlerFunc(h.handleSubmission))
}

type publicLeadRequest struct {
	TenantSlug string `json:"tenant_slug"`
	domain.CreateContactRequest
}

func (h *PublicHandler) handleLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req publicLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TenantSlug == "" {
		WriteJSONError(w, "tenant_slug is required", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenant, err := h.tenantRepo.GetBySlug(r.Context(), req.TenantSlug)
	if err != nil {
		var notFound *domain.ErrTenantNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Tenant not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to resolve tenant for lead")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !tenant.IsActive {
		WriteJSONError(w, "Tenant is not active", http.StatusBadRequest)
		return
	}

	if req.Source == "" {
		req.Source = "public_lead"
	}

	id, created, err := h.contactService.ResolveOrCreate(r.Context(), tenant.ID, &req.CreateContactRequest, "")
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to ingest lead")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
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

func (h *PublicHandler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	formID := r.PathValue("form_id")
	website, ok := h.resolveWebsite(w, r)
	if !ok {
		return
	}

	form, err := h.formService.GetPublicForm(r.Context(), formID, website.ID)
	if err != nil {
		var notFound *domain.ErrFormNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Form not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to load public form")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"form": form,
	})
}

func (h *PublicHandler) handleSubmission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	website, ok := h.resolveWebsite(w, r)
	if !ok {
		return
	}

	var req domain.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := &domain.SubmissionMeta{
		IP:        remoteIP(r),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
	}

	result, err := h.submissionService.HandleSubmission(r.Context(), website, &req, meta)
	if err != nil {
		var formNotFound *domain.ErrFormNotFound
		if errors.As(err, &formNotFound) {
			WriteJSONError(w, "Form not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to handle submission")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// resolveWebsite resolves the tracking id and runs the origin guard. It
// writes the error response itself, so on !ok the caller just returns.
// The guard runs before any request body is read or any write happens.
func (h *PublicHandler) resolveWebsite(w http.ResponseWriter, r *http.Request) (*domain.Website, bool) {
	trackingID := r.URL.Query().Get("tracking_id")
	if trackingID == "" {
		WriteJSONError(w, "tracking_id is required", http.StatusBadRequest)
		return nil, false
	}

	website, err := h.websiteService.GetByTrackingID(r.Context(), trackingID)
	if err != nil {
		var notFound *domain.ErrWebsiteNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Website not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.WithField("error", err.Error()).Error("Failed to resolve website by tracking id")
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = r.Header.Get("Referer")
	}
	if err := h.originValidator.Validate(origin, website.Domain); err != nil {
		h.logger.WithFields(map[string]interface{}{
			"website_id": website.ID,
			"origin":     origin,
		}).Warn("Rejected public request with invalid origin")
		WriteJSONError(w, "Origin not allowed", http.StatusForbidden)
		return nil, false
	}

	return website, true
}
