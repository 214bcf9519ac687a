package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type tenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db *sql.DB) domain.TenantRepository {
	return &tenantRepository{db: db}
}

// CreateWithOwner registers a tenant atomically: the tenant row, its system
// website and the admin user are one transaction. Uniqueness conflicts map
// to typed errors so the boundary can answer 409.
func (r *tenantRepository) CreateWithOwner(ctx context.Context, tenant *domain.Tenant, systemWebsite *domain.Website, owner *domain.User) error {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.IsActive = true

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tenants (id, name, slug, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, tenant.ID, tenant.Name, tenant.Slug, tenant.IsActive, tenant.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return &domain.ErrTenantExists{Message: "tenant slug already exists"}
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	systemWebsite.TenantID = tenant.ID
	systemWebsite.CreatedAt = now
	_, err = tx.ExecContext(ctx, `
		INSERT INTO websites (id, tenant_id, domain, name, tracking_id, is_system, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, systemWebsite.ID, systemWebsite.TenantID, systemWebsite.Domain, systemWebsite.Name,
		systemWebsite.TrackingID, systemWebsite.IsSystem, systemWebsite.IsActive, systemWebsite.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create system website: %w", err)
	}

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.TenantID = tenant.ID
	owner.CreatedAt = now
	owner.UpdatedAt = now
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, tenant_id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, owner.ID, owner.TenantID, owner.Email, owner.PasswordHash, owner.Name,
		owner.Role, owner.IsActive, owner.CreatedAt, owner.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return &domain.ErrUserExists{Message: "user already exists in this tenant"}
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	query := `
		SELECT id, name, slug, is_active, created_at
		FROM tenants
		WHERE slug = $1
	`
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.IsActive,
		&tenant.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTenantNotFound{Message: "tenant not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	query := `
		SELECT id, name, slug, is_active, created_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.IsActive,
		&tenant.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTenantNotFound{Message: "tenant not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}
