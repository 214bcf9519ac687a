package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type websiteRepository struct {
	db *sql.DB
}

// NewWebsiteRepository creates a new PostgreSQL website repository
func NewWebsiteRepository(db *sql.DB) domain.WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) Create(ctx context.Context, website *domain.Website) error {
	if website.ID == "" {
		website.ID = uuid.New().String()
	}
	website.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO websites (id, tenant_id, domain, name, tracking_id, is_system, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		website.ID, website.TenantID, website.Domain, website.Name,
		website.TrackingID, website.IsSystem, website.IsActive, website.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_website_tenant_domain") {
			return &domain.ErrWebsiteExists{Message: "domain is already registered for this tenant"}
		}
		return fmt.Errorf("failed to create website: %w", err)
	}
	return nil
}

// GetByTrackingID is the anonymous resolution path. The tracking id is
// globally unique so no tenant filter applies here; the caller derives the
// tenant from the returned row.
func (r *websiteRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Website, error) {
	query := `
		SELECT id, tenant_id, domain, name, tracking_id, is_system, is_active, created_at
		FROM websites
		WHERE tracking_id = $1
	`
	return r.scanWebsite(r.db.QueryRowContext(ctx, query, trackingID))
}

func (r *websiteRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.Website, error) {
	query := `
		SELECT id, tenant_id, domain, name, tracking_id, is_system, is_active, created_at
		FROM websites
		WHERE id = $1 AND tenant_id = $2
	`
	return r.scanWebsite(r.db.QueryRowContext(ctx, query, id, tenantID))
}

func (r *websiteRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Website, error) {
	query := `
		SELECT id, tenant_id, domain, name, tracking_id, is_system, is_active, created_at
		FROM websites
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	defer rows.Close()

	var websites []*domain.Website
	for rows.Next() {
		var website domain.Website
		if err := rows.Scan(
			&website.ID,
			&website.TenantID,
			&website.Domain,
			&website.Name,
			&website.TrackingID,
			&website.IsSystem,
			&website.IsActive,
			&website.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan website: %w", err)
		}
		websites = append(websites, &website)
	}
	return websites, rows.Err()
}

func (r *websiteRepository) scanWebsite(row *sql.Row) (*domain.Website, error) {
	var website domain.Website
	err := row.Scan(
		&website.ID,
		&website.TenantID,
		&website.Domain,
		&website.Name,
		&website.TrackingID,
		&website.IsSystem,
		&website.IsActive,
		&website.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrWebsiteNotFound{Message: "website not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get website: %w", err)
	}
	return &website, nil
}
