package domain

import (
	"context"
	"time"
)

// AuditEvent records a state-changing action. Rows are append-only and
// written out of band relative to the transaction they describe.
type AuditEvent struct {
	ID         string                 `json:"id"`
	TenantID   string                 `json:"tenant_id"`
	UserID     *string                `json:"user_id,omitempty"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityID   string                 `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ListAuditParams filters a tenant-scoped audit listing.
type ListAuditParams struct {
	Action     string
	EntityType string
	Limit      int
	Offset     int
}

type AuditRepository interface {
	Insert(ctx context.Context, event *AuditEvent) error
	List(ctx context.Context, tenantID string, params ListAuditParams) ([]*AuditEvent, error)
}

type AuditServiceInterface interface {
	// Emit records an event best-effort: it returns immediately, writes on
	// its own unit of work after the triggering operation, and swallows
	// failures.
	Emit(tenantID, action, entityType, entityID string, userID string, metadata map[string]interface{})

	List(ctx context.Context, tenantID string, params ListAuditParams) ([]*AuditEvent, error)
}
