package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusQualified ContactStatus = "qualified"
	ContactStatusLost      ContactStatus = "lost"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusContacted, ContactStatusQualified, ContactStatusLost:
		return true
	}
	return false
}

// Contact is a durable identity within a tenant. When an email is present,
// (tenant_id, email) is the deduplication key: repeat sightings of the same
// email touch the existing row instead of creating a new one, and never
// overwrite its identity fields.
type Contact struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenant_id"`
	WebsiteID string        `json:"website_id"`
	Email     string        `json:"email,omitempty"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone,omitempty"`
	Source    string        `json:"source,omitempty"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NormalizeEmail case-folds and trims an email before it is used as a
// deduplication key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateContactRequest covers both authenticated contact creation and
// anonymous lead capture.
type CreateContactRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Source    string `json:"source,omitempty"`
	WebsiteID string `json:"website_id,omitempty"`
}

func (r *CreateContactRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)

	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.Email != "" && !govalidator.IsEmail(r.Email) {
		return fmt.Errorf("email is not a valid email address")
	}
	return nil
}

// UpdateContactRequest enumerates the mutable fields of a contact. Each is
// optional; only provided fields are applied.
type UpdateContactRequest struct {
	Name   *string        `json:"name,omitempty"`
	Phone  *string        `json:"phone,omitempty"`
	Source *string        `json:"source,omitempty"`
	Status *ContactStatus `json:"status,omitempty"`
}

func (r *UpdateContactRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fmt.Errorf("invalid status %q", *r.Status)
	}
	if r.Name == nil && r.Phone == nil && r.Source == nil && r.Status == nil {
		return fmt.Errorf("no fields to update")
	}
	return nil
}

// ListContactsParams filters a tenant-scoped contact listing.
type ListContactsParams struct {
	Status ContactStatus
	Search string
	Limit  int
	Offset int
}

type ContactRepository interface {
	// ResolveOrCreate performs the atomic create-or-touch upsert. When the
	// contact carries no website id, fallbackWebsite is used to attribute
	// it to the tenant's system website, creating that website in the same
	// transaction if it is missing. When the contact has an email the
	// write is a single conflict-resolving statement on (tenant_id,
	// email): on conflict only recency metadata is refreshed and the
	// existing row's id is returned with created=false.
	ResolveOrCreate(ctx context.Context, contact *Contact, fallbackWebsite *Website) (id string, created bool, err error)

	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*Contact, error)
	List(ctx context.Context, tenantID string, params ListContactsParams) ([]*Contact, error)
	Update(ctx context.Context, tenantID, id string, update *UpdateContactRequest) (*Contact, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// ContactSummary aggregates a contact with its related records.
type ContactSummary struct {
	Contact            *Contact    `json:"contact"`
	Deals              []*Deal     `json:"deals"`
	RecentActivities   []*Activity `json:"recent_activities"`
	ActivityCount      int64       `json:"activity_count"`
	TotalPipelineValue float64     `json:"total_pipeline_value"`
}

type ContactServiceInterface interface {
	// ResolveOrCreate turns a (possibly anonymous) submission into a
	// durable contact id without duplication.
	ResolveOrCreate(ctx context.Context, tenantID string, req *CreateContactRequest, actorID string) (id string, created bool, err error)

	Get(ctx context.Context, tenantID, id string) (*Contact, error)
	List(ctx context.Context, tenantID string, params ListContactsParams) ([]*Contact, error)
	Update(ctx context.Context, tenantID, id string, req *UpdateContactRequest) (*Contact, error)
	Delete(ctx context.Context, tenantID, id string) error
	Summary(ctx context.Context, tenantID, id string) (*ContactSummary, error)
}

type ErrContactNotFound struct {
	Message string
}

func (e *ErrContactNotFound) Error() string {
	return e.Message
}
