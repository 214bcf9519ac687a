package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

// Website is a registered origin for public lead capture. The tracking id
// is globally unique, opaque and publicly embeddable: it lets an anonymous
// request resolve a website without authentication.
//
// Exactly one website per tenant carries IsSystem: it is created at tenant
// registration and serves as the fallback owner for contacts created
// without an explicit website.
type Website struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Domain     string    `json:"domain"`
	Name       string    `json:"name,omitempty"`
	TrackingID string    `json:"tracking_id"`
	IsSystem   bool      `json:"is_system"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerateTrackingID produces an opaque tracking id for a user-registered
// website.
func GenerateTrackingID() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// GenerateSystemTrackingID produces a tracking id for a tenant's implicit
// system website.
func GenerateSystemTrackingID() string {
	return "SYS-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// NewSystemWebsite builds the implicit website created alongside a tenant.
func NewSystemWebsite(tenantID string) *Website {
	return &Website{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Domain:     fmt.Sprintf("internal.%s.crm", tenantID),
		Name:       "System Internal",
		TrackingID: GenerateSystemTrackingID(),
		IsSystem:   true,
		IsActive:   true,
	}
}

type CreateWebsiteRequest struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

func (r *CreateWebsiteRequest) Validate() error {
	r.Domain = strings.ToLower(strings.TrimSpace(r.Domain))

	if r.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if !govalidator.IsDNSName(r.Domain) {
		return fmt.Errorf("domain is not a valid hostname")
	}
	return nil
}

type WebsiteRepository interface {
	Create(ctx context.Context, website *Website) error

	// GetByTrackingID resolves a website by its globally unique tracking
	// id. There is no tenant context yet at this point: the tenant is
	// discovered through the website row, not assumed.
	GetByTrackingID(ctx context.Context, trackingID string) (*Website, error)

	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*Website, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Website, error)
}

type WebsiteServiceInterface interface {
	Create(ctx context.Context, tenantID string, req *CreateWebsiteRequest) (*Website, error)
	List(ctx context.Context, tenantID string) ([]*Website, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*Website, error)
}

type ErrWebsiteNotFound struct {
	Message string
}

func (e *ErrWebsiteNotFound) Error() string {
	return e.Message
}

type ErrWebsiteExists struct {
	Message string
}

func (e *ErrWebsiteExists) Error() string {
	return e.Message
}
