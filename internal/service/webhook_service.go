package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
)

// WebhookService manages webhook subscriptions. Delivery is out of scope;
// only the subscription records live here.
type WebhookService struct {
	repo     domain.WebhookRepository
	auditSvc domain.AuditServiceInterface
	logger   logger.Logger
}

func NewWebhookService(repo domain.WebhookRepository, auditSvc domain.AuditServiceInterface, log logger.Logger) *WebhookService {
	return &WebhookService{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   log,
	}
}

func (s *WebhookService) Create(ctx context.Context, tenantID string, req *domain.CreateWebhookRequest) (*domain.WebhookSubscription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	secret, err := generateWebhookSecret()
	if err != nil {
		return nil, err
	}

	subscription := &domain.WebhookSubscription{
		TenantID: tenantID,
		URL:      req.URL,
		Secret:   secret,
		Events:   req.Events,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	s.auditSvc.Emit(tenantID, "webhook.created", "webhook", subscription.ID, "", nil)
	return subscription, nil
}

func (s *WebhookService) List(ctx context.Context, tenantID string) ([]*domain.WebhookSubscription, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *WebhookService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.auditSvc.Emit(tenantID, "webhook.deleted", "webhook", id, "", nil)
	return nil
}

func generateWebhookSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}
	return "whsec_" + hex.EncodeToString(buf), nil
}
