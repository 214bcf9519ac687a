package service

import (
	"context"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
)

// ActivityService manages contact timeline entries.
type ActivityService struct {
	repo        domain.ActivityRepository
	contactRepo domain.ContactRepository
	logger      logger.Logger
}

func NewActivityService(repo domain.ActivityRepository, contactRepo domain.ContactRepository, log logger.Logger) *ActivityService {
	return &ActivityService{
		repo:        repo,
		contactRepo: contactRepo,
		logger:      log,
	}
}

func (s *ActivityService) Create(ctx context.Context, tenantID string, req *domain.CreateActivityRequest, actorID string) (*domain.Activity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.contactRepo.GetByIDAndTenant(ctx, req.ContactID, tenantID); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		TenantID:  tenantID,
		ContactID: req.ContactID,
		Type:      req.Type,
		Content:   req.Content,
	}
	if actorID != "" {
		activity.UserID = &actorID
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ActivityService) ListByContact(ctx context.Context, tenantID, contactID string, limit int) ([]*domain.Activity, error) {
	if _, err := s.contactRepo.GetByIDAndTenant(ctx, contactID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListByContact(ctx, tenantID, contactID, limit)
}
