package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.TenantID, user.Email, user.PasswordHash, user.Name,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_user_email_tenant") {
			return &domain.ErrUserExists{Message: "user already exists in this tenant"}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*domain.User, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, name, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1 AND tenant_id = $2
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, tenantID))
}

// GetByIDAndTenant filters by both id and tenant id so a token whose tenant
// claim no longer matches the stored row resolves to nothing.
func (r *userRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.User, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, name, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1 AND tenant_id = $2
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id, tenantID))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.TenantID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
