package service

import (
	"context"
	"time"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/logger"
)

const auditWriteTimeout = 5 * time.Second

// AuditService records state-changing actions. Writes are best-effort and
// detached from the request: a failed audit insert never fails the
// operation it describes.
type AuditService struct {
	repo   domain.AuditRepository
	logger logger.Logger
}

func NewAuditService(repo domain.AuditRepository, log logger.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: log,
	}
}

// Emit writes the event on its own goroutine with a fresh context, so the
// insert runs on the pool rather than inside the request transaction and
// survives request cancellation. Failures are logged and swallowed.
func (s *AuditService) Emit(tenantID, action, entityType, entityID string, userID string, metadata map[string]interface{}) {
	event := &domain.AuditEvent{
		TenantID:   tenantID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if userID != "" {
		event.UserID = &userID
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if err := s.repo.Insert(ctx, event); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"tenant_id": tenantID,
				"action":    action,
				"error":     err.Error(),
			}).Error("Failed to write audit event")
		}
	}()
}

func (s *AuditService) List(ctx context.Context, tenantID string, params domain.ListAuditParams) ([]*domain.AuditEvent, error) {
	if params.Limit <= 0 || params.Limit > 200 {
		params.Limit = 50
	}
	return s.repo.List(ctx, tenantID, params)
}
