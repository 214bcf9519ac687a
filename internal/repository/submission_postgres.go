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

type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &submissionRepository{db: db}
}

// CreateWithActivity persists the raw submission and, when present, the
// form activity on the resolved contact as one transaction. The submission
// record and the timeline entry either both exist or neither does.
func (r *submissionRepository) CreateWithActivity(ctx context.Context, submission *domain.FormSubmission, activity *domain.Activity) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	submission.CreatedAt = time.Now().UTC()

	var meta interface{}
	if submission.Meta != nil {
		encoded, err := json.Marshal(submission.Meta)
		if err != nil {
			return fmt.Errorf("failed to encode submission meta: %w", err)
		}
		meta = encoded
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form_submissions (id, tenant_id, website_id, form_id, data, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, submission.ID, submission.TenantID, submission.WebsiteID, submission.FormID,
		[]byte(submission.Data), meta, submission.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	if activity != nil {
		if activity.ID == "" {
			activity.ID = uuid.New().String()
		}
		activity.CreatedAt = submission.CreatedAt
		_, err = tx.ExecContext(ctx, `
			INSERT INTO activities (id, tenant_id, contact_id, user_id, type, content, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, activity.ID, activity.TenantID, activity.ContactID, activity.UserID,
			activity.Type, activity.Content, activity.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create submission activity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}
	return nil
}
