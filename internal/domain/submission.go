package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// FormSubmission is the raw payload of a public form post, kept verbatim
// alongside the contact identity it resolved to.
type FormSubmission struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	WebsiteID string          `json:"website_id"`
	FormID    string          `json:"form_id"`
	Data      json.RawMessage `json:"data"`
	Meta      *SubmissionMeta `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// SubmissionMeta captures request provenance for a submission.
type SubmissionMeta struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Referer   string `json:"referer,omitempty"`
}

type CreateSubmissionRequest struct {
	FormID string          `json:"form_id"`
	Data   json.RawMessage `json:"data"`
}

func (r *CreateSubmissionRequest) Validate() error {
	if r.FormID == "" {
		return fmt.Errorf("form_id is required")
	}
	if len(r.Data) == 0 || !gjson.ValidBytes(r.Data) {
		return fmt.Errorf("data must be a valid JSON object")
	}
	return nil
}

// SubmissionIdentity is the contact identity extracted from a raw payload.
type SubmissionIdentity struct {
	Email string
	Name  string
	Phone string
}

// ExtractIdentity pulls email, name and phone out of a submission payload,
// accepting both lowercase and capitalized keys. When a name is absent the
// local part of the email is used so the contact row is never nameless.
func ExtractIdentity(data json.RawMessage) SubmissionIdentity {
	parsed := gjson.ParseBytes(data)

	pick := func(keys ...string) string {
		for _, key := range keys {
			if v := parsed.Get(key); v.Exists() {
				return strings.TrimSpace(v.String())
			}
		}
		return ""
	}

	identity := SubmissionIdentity{
		Email: NormalizeEmail(pick("email", "Email")),
		Name:  pick("name", "Name"),
		Phone: pick("phone", "Phone"),
	}

	if identity.Name == "" && identity.Email != "" {
		identity.Name = strings.SplitN(identity.Email, "@", 2)[0]
	}

	return identity
}

type SubmissionRepository interface {
	// CreateWithActivity persists the raw submission and, when activity is
	// non-nil, the form activity on the resolved contact, in one
	// transaction.
	CreateWithActivity(ctx context.Context, submission *FormSubmission, activity *Activity) error
}

// SubmissionResult is returned to the embedding widget.
type SubmissionResult struct {
	SubmissionID string `json:"submission_id"`
	ContactID    string `json:"contact_id,omitempty"`
}

type SubmissionServiceInterface interface {
	// HandleSubmission runs the public ingestion pipeline for a website
	// already resolved by tracking id and cleared by the origin guard.
	HandleSubmission(ctx context.Context, website *Website, req *CreateSubmissionRequest, meta *SubmissionMeta) (*SubmissionResult, error)
}
