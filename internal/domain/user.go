package domain

import (
	"context"
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
	RoleSales  UserRole = "sales"
	RoleViewer UserRole = "viewer"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleSales, RoleViewer:
		return true
	}
	return false
}

// User is a principal scoped to a tenant. The same email string may exist
// in multiple tenants as distinct principals; (email, tenant_id) is unique.
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error

	// GetByEmailAndTenant looks up a principal inside one tenant. Login
	// resolves the tenant first, then scopes the user lookup by it.
	GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*User, error)

	// GetByIDAndTenant filters by BOTH id and tenant id. This is the
	// identity gate's storage check: a token's tenant claim must still
	// match the principal's stored tenant assignment.
	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*User, error)
}

type ErrUserNotFound struct {
	Message string
}

func (e *ErrUserNotFound) Error() string {
	return e.Message
}

type ErrUserExists struct {
	Message string
}

func (e *ErrUserExists) Error() string {
	return e.Message
}
