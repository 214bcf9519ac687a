package service

import (
	"context"
	"fmt"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

// SubmissionService runs the public form ingestion pipeline: identity
// extraction, contact resolution and raw payload persistence.
type SubmissionService struct {
	submissionRepo domain.SubmissionRepository
	formRepo       domain.FormRepository
	contactSvc     domain.ContactServiceInterface
	auditSvc       domain.AuditServiceInterface
	eventBus       domain.EventBus
	logger         logger.Logger
}

type SubmissionServiceConfig struct {
	SubmissionRepository domain.SubmissionRepository
	FormRepository       domain.FormRepository
	ContactService       domain.ContactServiceInterface
	AuditService         domain.AuditServiceInterface
	EventBus             domain.EventBus
	Logger               logger.Logger
}

func NewSubmissionService(cfg SubmissionServiceConfig) *SubmissionService {
	return &SubmissionService{
		submissionRepo: cfg.SubmissionRepository,
		formRepo:       cfg.FormRepository,
		contactSvc:     cfg.ContactService,
		auditSvc:       cfg.AuditService,
		eventBus:       cfg.EventBus,
		logger:         cfg.Logger,
	}
}

// HandleSubmission ingests a public form post for a website that the
// caller already resolved by tracking id and cleared through the origin
// guard. The raw payload is kept verbatim; when it carries an identity the
// contact is resolved first and a form activity lands on its timeline in
// the same transaction as the submission.
func (s *SubmissionService) HandleSubmission(ctx context.Context, website *domain.Website, req *domain.CreateSubmissionRequest, meta *domain.SubmissionMeta) (*domain.SubmissionResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "SubmissionService", "HandleSubmission")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	form, err := s.formRepo.GetByIDAndWebsite(ctx, req.FormID, website.ID)
	if err != nil {
		return nil, err
	}

	identity := domain.ExtractIdentity(req.Data)

	var contactID string
	if identity.Email != "" || identity.Name != "" {
		contactID, _, err = s.contactSvc.ResolveOrCreate(ctx, website.TenantID, &domain.CreateContactRequest{
			Name:      identity.Name,
			Email:     identity.Email,
			Phone:     identity.Phone,
			Source:    fmt.Sprintf("form:%s", form.Name),
			WebsiteID: website.ID,
		}, "")
		if err != nil {
			tracing.MarkSpanError(ctx, err)
			return nil, err
		}
	}

	submission := &domain.FormSubmission{
		TenantID:  website.TenantID,
		WebsiteID: website.ID,
		FormID:    form.ID,
		Data:      req.Data,
		Meta:      meta,
	}

	var activity *domain.Activity
	if contactID != "" {
		activity = &domain.Activity{
			TenantID:  website.TenantID,
			ContactID: contactID,
			Type:      domain.ActivityTypeForm,
			Content:   fmt.Sprintf("Submitted form %q", form.Name),
		}
	}

	if err := s.submissionRepo.CreateWithActivity(ctx, submission, activity); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	s.auditSvc.Emit(website.TenantID, "submission.received", "form_submission", submission.ID, "", map[string]interface{}{
		"form_id": form.ID,
	})
	s.eventBus.Publish(ctx, domain.EventPayload{
		Type:     domain.EventSubmissionReceived,
		TenantID: website.TenantID,
		EntityID: submission.ID,
	})

	return &domain.SubmissionResult{
		SubmissionID: submission.ID,
		ContactID:    contactID,
	}, nil
}
