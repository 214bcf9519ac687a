package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	activity.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO activities (id, tenant_id, contact_id, user_id, type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		activity.ID, activity.TenantID, activity.ContactID, activity.UserID,
		activity.Type, activity.Content, activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) ListByContact(ctx context.Context, tenantID, contactID string, limit int) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, tenant_id, contact_id, user_id, type, content, created_at
		FROM activities
		WHERE tenant_id = $1 AND contact_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, tenantID, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var (
			activity domain.Activity
			content  sql.NullString
		)
		if err := rows.Scan(
			&activity.ID,
			&activity.TenantID,
			&activity.ContactID,
			&activity.UserID,
			&activity.Type,
			&content,
			&activity.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Content = content.String
		activities = append(activities, &activity)
	}
	return activities, rows.Err()
}

func (r *activityRepository) CountByContact(ctx context.Context, tenantID, contactID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM activities WHERE tenant_id = $1 AND contact_id = $2
	`, tenantID, contactID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}
