package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeTextarea, FieldTypeSelect, FieldTypeCheckbox:
		return true
	}
	return false
}

// Form is an embeddable lead-capture form owned by a website.
type Form struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	WebsiteID string          `json:"website_id"`
	Name      string          `json:"name"`
	Settings  json.RawMessage `json:"settings,omitempty"`
	Fields    []*FormField    `json:"fields,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type FormField struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"-"`
	FormID      string          `json:"form_id"`
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	FieldType   FieldType       `json:"field_type"`
	Required    bool            `json:"required"`
	SortOrder   int             `json:"order"`
	Options     json.RawMessage `json:"options,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

type CreateFormRequest struct {
	WebsiteID string            `json:"website_id"`
	Name      string            `json:"name"`
	Settings  json.RawMessage   `json:"settings,omitempty"`
	Fields    []CreateFormField `json:"fields,omitempty"`
}

type CreateFormField struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	FieldType   FieldType       `json:"field_type"`
	Required    bool            `json:"required"`
	SortOrder   int             `json:"order"`
	Options     json.RawMessage `json:"options,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

func (r *CreateFormRequest) Validate() error {
	if r.WebsiteID == "" {
		return fmt.Errorf("website_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	for i, f := range r.Fields {
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("field %d: key is required", i)
		}
		if !f.FieldType.IsValid() {
			return fmt.Errorf("field %q: invalid field_type %q", f.Key, f.FieldType)
		}
	}
	return nil
}

type FormRepository interface {
	Create(ctx context.Context, form *Form) error

	// GetByIDAndWebsite validates the form/website hierarchy: a public
	// request may only read forms belonging to the website its tracking
	// id resolved to.
	GetByIDAndWebsite(ctx context.Context, id, websiteID string) (*Form, error)

	ListByTenant(ctx context.Context, tenantID string) ([]*Form, error)
}

type FormServiceInterface interface {
	Create(ctx context.Context, tenantID string, req *CreateFormRequest) (*Form, error)
	List(ctx context.Context, tenantID string) ([]*Form, error)

	// GetPublicForm returns the form definition for rendering by the
	// embedded widget, after the caller has resolved the website and
	// validated provenance.
	GetPublicForm(ctx context.Context, formID, websiteID string) (*Form, error)
}

type ErrFormNotFound struct {
	Message string
}

func (e *ErrFormNotFound) Error() string {
	return e.Message
}
