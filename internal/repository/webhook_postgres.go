package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type webhookRepository struct {
	db *sql.DB
}

// NewWebhookRepository creates a new PostgreSQL webhook repository
func NewWebhookRepository(db *sql.DB) domain.WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Create(ctx context.Context, subscription *domain.WebhookSubscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.New().String()
	}
	subscription.CreatedAt = time.Now().UTC()

	events, err := json.Marshal(subscription.Events)
	if err != nil {
		return fmt.Errorf("failed to encode webhook events: %w", err)
	}

	query := `
		INSERT INTO webhook_subscriptions (id, tenant_id, url, secret, events, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query,
		subscription.ID, subscription.TenantID, subscription.URL,
		subscription.Secret, events, subscription.IsActive, subscription.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create webhook subscription: %w", err)
	}
	return nil
}

func (r *webhookRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.WebhookSubscription, error) {
	query := `
		SELECT id, tenant_id, url, secret, events, is_active, created_at
		FROM webhook_subscriptions
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []*domain.WebhookSubscription
	for rows.Next() {
		var (
			subscription domain.WebhookSubscription
			events       []byte
		)
		if err := rows.Scan(
			&subscription.ID,
			&subscription.TenantID,
			&subscription.URL,
			&subscription.Secret,
			&events,
			&subscription.IsActive,
			&subscription.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan webhook subscription: %w", err)
		}
		if len(events) > 0 {
			if err := json.Unmarshal(events, &subscription.Events); err != nil {
				return nil, fmt.Errorf("failed to decode webhook events: %w", err)
			}
		}
		subscriptions = append(subscriptions, &subscription)
	}
	return subscriptions, rows.Err()
}

func (r *webhookRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM webhook_subscriptions WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete webhook subscription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete webhook subscription: %w", err)
	}
	if affected == 0 {
		return &domain.ErrWebhookNotFound{Message: "webhook subscription not found"}
	}
	return nil
}
