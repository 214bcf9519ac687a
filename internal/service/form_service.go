package service

import (
	"context"
	"fmt"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

// FormService manages embeddable form definitions.
type FormService struct {
	repo        domain.FormRepository
	websiteRepo domain.WebsiteRepository
	auditSvc    domain.AuditServiceInterface
	logger      logger.Logger
}

func NewFormService(repo domain.FormRepository, websiteRepo domain.WebsiteRepository, auditSvc domain.AuditServiceInterface, log logger.Logger) *FormService {
	return &FormService{
		repo:        repo,
		websiteRepo: websiteRepo,
		auditSvc:    auditSvc,
		logger:      log,
	}
}

func (s *FormService) Create(ctx context.Context, tenantID string, req *domain.CreateFormRequest) (*domain.Form, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "FormService", "Create")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The target website must belong to the caller's tenant.
	if _, err := s.websiteRepo.GetByIDAndTenant(ctx, req.WebsiteID, tenantID); err != nil {
		return nil, fmt.Errorf("website does not belong to this tenant")
	}

	form := &domain.Form{
		TenantID:  tenantID,
		WebsiteID: req.WebsiteID,
		Name:      req.Name,
		Settings:  req.Settings,
	}
	for _, f := range req.Fields {
		form.Fields = append(form.Fields, &domain.FormField{
			Key:         f.Key,
			Label:       f.Label,
			FieldType:   f.FieldType,
			Required:    f.Required,
			SortOrder:   f.SortOrder,
			Options:     f.Options,
			Placeholder: f.Placeholder,
		})
	}

	if err := s.repo.Create(ctx, form); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	s.auditSvc.Emit(tenantID, "form.created", "form", form.ID, "", nil)
	return form, nil
}

func (s *FormService) List(ctx context.Context, tenantID string) ([]*domain.Form, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// GetPublicForm returns a form definition for the embedded widget. The
// website must already be resolved by tracking id: the form is looked up
// under that website only, never across websites or tenants.
func (s *FormService) GetPublicForm(ctx context.Context, formID, websiteID string) (*domain.Form, error) {
	return s.repo.GetByIDAndWebsite(ctx, formID, websiteID)
}
