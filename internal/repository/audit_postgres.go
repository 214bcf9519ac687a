package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new PostgreSQL audit repository
func NewAuditRepository(db *sql.DB) domain.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now().UTC()

	var metadata interface{}
	if len(event.Metadata) > 0 {
		encoded, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode audit metadata: %w", err)
		}
		metadata = encoded
	}

	var entityID interface{}
	if event.EntityID != "" {
		entityID = event.EntityID
	}

	query := `
		INSERT INTO audit_logs (id, tenant_id, user_id, action, entity_type, entity_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.TenantID, event.UserID, event.Action,
		event.EntityType, entityID, metadata, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, tenantID string, params domain.ListAuditParams) ([]*domain.AuditEvent, error) {
	builder := sq.Select("id", "tenant_id", "user_id", "action", "entity_type", "entity_id", "metadata", "created_at").
		From("audit_logs").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if params.Action != "" {
		builder = builder.Where(sq.Eq{"action": params.Action})
	}
	if params.EntityType != "" {
		builder = builder.Where(sq.Eq{"entity_type": params.EntityType})
	}
	if params.Limit > 0 {
		builder = builder.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		builder = builder.Offset(uint64(params.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var (
			event      domain.AuditEvent
			entityType sql.NullString
			entityID   sql.NullString
			metadata   []byte
		)
		if err := rows.Scan(
			&event.ID,
			&event.TenantID,
			&event.UserID,
			&event.Action,
			&entityType,
			&entityID,
			&metadata,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		event.EntityType = entityType.String
		event.EntityID = entityID.String
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode audit metadata: %w", err)
			}
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}
