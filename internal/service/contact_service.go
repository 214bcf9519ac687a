package service

import (
	"context"
	"fmt"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

// ContactService owns the contact identity lifecycle: deduplicating
// sightings into durable ids and the authenticated CRUD surface.
type ContactService struct {
	contactRepo  domain.ContactRepository
	websiteRepo  domain.WebsiteRepository
	dealRepo     domain.DealRepository
	activityRepo domain.ActivityRepository
	auditSvc     domain.AuditServiceInterface
	eventBus     domain.EventBus
	logger       logger.Logger
}

type ContactServiceConfig struct {
	ContactRepository  domain.ContactRepository
	WebsiteRepository  domain.WebsiteRepository
	DealRepository     domain.DealRepository
	ActivityRepository domain.ActivityRepository
	AuditService       domain.AuditServiceInterface
	EventBus           domain.EventBus
	Logger             logger.Logger
}

func NewContactService(cfg ContactServiceConfig) *ContactService {
	return &ContactService{
		contactRepo:  cfg.ContactRepository,
		websiteRepo:  cfg.WebsiteRepository,
		dealRepo:     cfg.DealRepository,
		activityRepo: cfg.ActivityRepository,
		auditSvc:     cfg.AuditService,
		eventBus:     cfg.EventBus,
		logger:       cfg.Logger,
	}
}

// ResolveOrCreate turns a sighting into a durable contact id. An explicit
// website id must belong to the tenant; without one the sighting is
// attributed to the system website, recreating it if it went missing.
// actorID is empty for anonymous public captures.
func (s *ContactService) ResolveOrCreate(ctx context.Context, tenantID string, req *domain.CreateContactRequest, actorID string) (string, bool, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ContactService", "ResolveOrCreate")
	defer span.End()

	if err := req.Validate(); err != nil {
		return "", false, err
	}

	var fallback *domain.Website
	if req.WebsiteID != "" {
		if _, err := s.websiteRepo.GetByIDAndTenant(ctx, req.WebsiteID, tenantID); err != nil {
			return "", false, fmt.Errorf("website does not belong to this tenant")
		}
	} else {
		fallback = domain.NewSystemWebsite(tenantID)
	}

	contact := &domain.Contact{
		TenantID:  tenantID,
		WebsiteID: req.WebsiteID,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Source:    req.Source,
		Status:    domain.ContactStatusNew,
	}

	id, created, err := s.contactRepo.ResolveOrCreate(ctx, contact, fallback)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return "", false, err
	}

	if fallback != nil && contact.WebsiteID == fallback.ID {
		s.logger.WithField("tenant_id", tenantID).Warn("System website was missing and has been recreated")
	}

	if created {
		s.auditSvc.Emit(tenantID, "contact.created", "contact", id, actorID, map[string]interface{}{
			"source": contact.Source,
		})
		s.eventBus.Publish(ctx, domain.EventPayload{
			Type:     domain.EventContactCreated,
			TenantID: tenantID,
			EntityID: id,
		})
	} else {
		s.auditSvc.Emit(tenantID, "contact.seen", "contact", id, actorID, nil)
		s.eventBus.Publish(ctx, domain.EventPayload{
			Type:     domain.EventContactSeen,
			TenantID: tenantID,
			EntityID: id,
		})
	}

	return id, created, nil
}

func (s *ContactService) Get(ctx context.Context, tenantID, id string) (*domain.Contact, error) {
	return s.contactRepo.GetByIDAndTenant(ctx, id, tenantID)
}

func (s *ContactService) List(ctx context.Context, tenantID string, params domain.ListContactsParams) ([]*domain.Contact, error) {
	if params.Limit <= 0 || params.Limit > 200 {
		params.Limit = 50
	}
	return s.contactRepo.List(ctx, tenantID, params)
}

func (s *ContactService) Update(ctx context.Context, tenantID, id string, req *domain.UpdateContactRequest) (*domain.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.Update(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Emit(tenantID, "contact.updated", "contact", id, "", nil)
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.contactRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.auditSvc.Emit(tenantID, "contact.deleted", "contact", id, "", nil)
	return nil
}

// Summary aggregates a contact with its deals and recent timeline.
func (s *ContactService) Summary(ctx context.Context, tenantID, id string) (*domain.ContactSummary, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ContactService", "Summary")
	defer span.End()

	contact, err := s.contactRepo.GetByIDAndTenant(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	deals, err := s.dealRepo.ListByContact(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListByContact(ctx, tenantID, id, 10)
	if err != nil {
		return nil, err
	}

	count, err := s.activityRepo.CountByContact(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	var pipeline float64
	for _, deal := range deals {
		if deal.Stage != domain.DealStageWon && deal.Stage != domain.DealStageLost {
			pipeline += deal.Value
		}
	}

	return &domain.ContactSummary{
		Contact:            contact,
		Deals:              deals,
		RecentActivities:   activities,
		ActivityCount:      count,
		TotalPipelineValue: pipeline,
	}, nil
}
