package domain

import (
	"context"
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeNote    ActivityType = "note"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeForm    ActivityType = "form"
)

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeNote, ActivityTypeMeeting, ActivityTypeForm:
		return true
	}
	return false
}

// Activity is a timeline entry on a contact. UserID is nil for entries
// produced by anonymous public submissions.
type Activity struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenant_id"`
	ContactID string       `json:"contact_id"`
	UserID    *string      `json:"user_id,omitempty"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type CreateActivityRequest struct {
	ContactID string       `json:"contact_id"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content,omitempty"`
}

func (r *CreateActivityRequest) Validate() error {
	if r.ContactID == "" {
		return fmt.Errorf("contact_id is required")
	}
	if r.Type == "" {
		r.Type = ActivityTypeNote
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("invalid type %q", r.Type)
	}
	return nil
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListByContact(ctx context.Context, tenantID, contactID string, limit int) ([]*Activity, error)
	CountByContact(ctx context.Context, tenantID, contactID string) (int64, error)
}

type ActivityServiceInterface interface {
	Create(ctx context.Context, tenantID string, req *CreateActivityRequest, actorID string) (*Activity, error)
	ListByContact(ctx context.Context, tenantID, contactID string, limit int) ([]*Activity, error)
}
