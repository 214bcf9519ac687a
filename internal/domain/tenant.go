package domain

import (
	"context"
	"regexp"
	"time"
)

// Tenant is an isolated customer organization, the top-level scoping key
// for all business data. Slug is immutable after registration.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsValidSlug reports whether s is a valid tenant slug: lowercase
// alphanumerics and single hyphens, 3 to 63 characters.
func IsValidSlug(s string) bool {
	if len(s) < 3 || len(s) > 63 {
		return false
	}
	return slugRegex.MatchString(s)
}

type TenantRepository interface {
	// CreateWithOwner creates the tenant, its system website and the admin
	// user in a single transaction. If any insert fails the whole
	// registration rolls back.
	CreateWithOwner(ctx context.Context, tenant *Tenant, systemWebsite *Website, owner *User) error

	// GetBySlug resolves a tenant by its globally unique slug.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	GetByID(ctx context.Context, id string) (*Tenant, error)
}

type ErrTenantNotFound struct {
	Message string
}

func (e *ErrTenantNotFound) Error() string {
	return e.Message
}

type ErrTenantExists struct {
	Message string
}

func (e *ErrTenantExists) Error() string {
	return e.Message
}

// ErrSlugTaken is the pre-checked form of a slug collision, detected
// before the registration transaction starts.
type ErrSlugTaken struct {
	Message string
}

func (e *ErrSlugTaken) Error() string {
	return e.Message
}
