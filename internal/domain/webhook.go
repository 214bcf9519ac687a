package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

// WebhookSubscription registers interest in tenant events. Delivery is
// handled by an external dispatcher; only the subscription model lives
// here.
type WebhookSubscription struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	URL       string    `json:"url"`
	Secret    string    `json:"-"`
	Events    []string  `json:"events"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

func (r *CreateWebhookRequest) Validate() error {
	if !govalidator.IsURL(r.URL) {
		return fmt.Errorf("url is not a valid URL")
	}
	if len(r.Events) == 0 {
		return fmt.Errorf("at least one event is required")
	}
	return nil
}

type WebhookRepository interface {
	Create(ctx context.Context, subscription *WebhookSubscription) error
	ListByTenant(ctx context.Context, tenantID string) ([]*WebhookSubscription, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type WebhookServiceInterface interface {
	Create(ctx context.Context, tenantID string, req *CreateWebhookRequest) (*WebhookSubscription, error)
	List(ctx context.Context, tenantID string) ([]*WebhookSubscription, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type ErrWebhookNotFound struct {
	Message string
}

func (e *ErrWebhookNotFound) Error() string {
	return e.Message
}
