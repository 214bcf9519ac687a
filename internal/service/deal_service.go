package service

import (
	"context"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

// DealService manages the tenant's sales pipeline.
type DealService struct {
	repo        domain.DealRepository
	contactRepo domain.ContactRepository
	auditSvc    domain.AuditServiceInterface
	eventBus    domain.EventBus
	logger      logger.Logger
}

type DealServiceConfig struct {
	DealRepository    domain.DealRepository
	ContactRepository domain.ContactRepository
	AuditService      domain.AuditServiceInterface
	EventBus          domain.EventBus
	Logger            logger.Logger
}

func NewDealService(cfg DealServiceConfig) *DealService {
	return &DealService{
		repo:        cfg.DealRepository,
		contactRepo: cfg.ContactRepository,
		auditSvc:    cfg.AuditService,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
	}
}

func (s *DealService) Create(ctx context.Context, tenantID string, req *domain.CreateDealRequest, actorID string) (*domain.Deal, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DealService", "Create")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The contact must exist inside the caller's tenant.
	if _, err := s.contactRepo.GetByIDAndTenant(ctx, req.ContactID, tenantID); err != nil {
		return nil, err
	}

	deal := &domain.Deal{
		TenantID:  tenantID,
		ContactID: req.ContactID,
		Title:     req.Title,
		Value:     req.Value,
		Stage:     req.Stage,
	}
	if err := s.repo.Create(ctx, deal); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	s.auditSvc.Emit(tenantID, "deal.created", "deal", deal.ID, actorID, map[string]interface{}{
		"value": deal.Value,
		"stage": string(deal.Stage),
	})
	s.eventBus.Publish(ctx, domain.EventPayload{
		Type:     domain.EventDealCreated,
		TenantID: tenantID,
		EntityID: deal.ID,
	})
	return deal, nil
}

func (s *DealService) List(ctx context.Context, tenantID string) ([]*domain.Deal, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *DealService) Update(ctx context.Context, tenantID, id string, req *domain.UpdateDealRequest) (*domain.Deal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var previousStage domain.DealStage
	if req.Stage != nil {
		existing, err := s.repo.GetByIDAndTenant(ctx, id, tenantID)
		if err != nil {
			return nil, err
		}
		previousStage = existing.Stage
	}

	deal, err := s.repo.Update(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Emit(tenantID, "deal.updated", "deal", id, "", nil)
	if req.Stage != nil && previousStage != *req.Stage {
		s.eventBus.Publish(ctx, domain.EventPayload{
			Type:     domain.EventDealStageChanged,
			TenantID: tenantID,
			EntityID: id,
			Data: map[string]interface{}{
				"from": string(previousStage),
				"to":   string(*req.Stage),
			},
		})
	}
	return deal, nil
}

func (s *DealService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.auditSvc.Emit(tenantID, "deal.deleted", "deal", id, "", nil)
	return nil
}
