package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type DealStage string

const (
	DealStageLead     DealStage = "lead"
	DealStageProposal DealStage = "proposal"
	DealStageWon      DealStage = "won"
	DealStageLost     DealStage = "lost"
)

func (s DealStage) IsValid() bool {
	switch s {
	case DealStageLead, DealStageProposal, DealStageWon, DealStageLost:
		return true
	}
	return false
}

type Deal struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ContactID string    `json:"contact_id"`
	Title     string    `json:"title"`
	Value     float64   `json:"value"`
	Stage     DealStage `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateDealRequest struct {
	ContactID string    `json:"contact_id"`
	Title     string    `json:"title"`
	Value     float64   `json:"value"`
	Stage     DealStage `json:"stage,omitempty"`
}

func (r *CreateDealRequest) Validate() error {
	if r.ContactID == "" {
		return fmt.Errorf("contact_id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.Value < 0 {
		return fmt.Errorf("value cannot be negative")
	}
	if r.Stage == "" {
		r.Stage = DealStageLead
	}
	if !r.Stage.IsValid() {
		return fmt.Errorf("invalid stage %q", r.Stage)
	}
	return nil
}

// UpdateDealRequest enumerates the mutable fields of a deal; only provided
// fields are applied.
type UpdateDealRequest struct {
	Title *string    `json:"title,omitempty"`
	Value *float64   `json:"value,omitempty"`
	Stage *DealStage `json:"stage,omitempty"`
}

func (r *UpdateDealRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if r.Value != nil && *r.Value < 0 {
		return fmt.Errorf("value cannot be negative")
	}
	if r.Stage != nil && !r.Stage.IsValid() {
		return fmt.Errorf("invalid stage %q", *r.Stage)
	}
	if r.Title == nil && r.Value == nil && r.Stage == nil {
		return fmt.Errorf("no fields to update")
	}
	return nil
}

type DealRepository interface {
	Create(ctx context.Context, deal *Deal) error
	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*Deal, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Deal, error)
	ListByContact(ctx context.Context, tenantID, contactID string) ([]*Deal, error)
	Update(ctx context.Context, tenantID, id string, update *UpdateDealRequest) (*Deal, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type DealServiceInterface interface {
	Create(ctx context.Context, tenantID string, req *CreateDealRequest, actorID string) (*Deal, error)
	List(ctx context.Context, tenantID string) ([]*Deal, error)
	Update(ctx context.Context, tenantID, id string, req *UpdateDealRequest) (*Deal, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type ErrDealNotFound struct {
	Message string
}

func (e *ErrDealNotFound) Error() string {
	return e.Message
}
