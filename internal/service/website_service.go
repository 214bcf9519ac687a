package service

import (
	"context"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

// WebsiteService manages registered lead-capture origins.
type WebsiteService struct {
	repo     domain.WebsiteRepository
	auditSvc domain.AuditServiceInterface
	logger   logger.Logger
}

func NewWebsiteService(repo domain.WebsiteRepository, auditSvc domain.AuditServiceInterface, log logger.Logger) *WebsiteService {
	return &WebsiteService{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   log,
	}
}

func (s *WebsiteService) Create(ctx context.Context, tenantID string, req *domain.CreateWebsiteRequest) (*domain.Website, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "WebsiteService", "Create")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	website := &domain.Website{
		TenantID:   tenantID,
		Domain:     req.Domain,
		Name:       req.Name,
		TrackingID: domain.GenerateTrackingID(),
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, website); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	s.auditSvc.Emit(tenantID, "website.created", "website", website.ID, "", map[string]interface{}{
		"domain": website.Domain,
	})
	return website, nil
}

func (s *WebsiteService) List(ctx context.Context, tenantID string) ([]*domain.Website, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// GetByTrackingID resolves a website for an anonymous public request.
// Inactive websites are treated as unknown.
func (s *WebsiteService) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Website, error) {
	website, err := s.repo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if !website.IsActive {
		return nil, &domain.ErrWebsiteNotFound{Message: "website not found"}
	}
	return website, nil
}
