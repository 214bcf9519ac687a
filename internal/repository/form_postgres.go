package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type formRepository struct {
	db *sql.DB
}

// NewFormRepository creates a new PostgreSQL form repository
func NewFormRepository(db *sql.DB) domain.FormRepository {
	return &formRepository{db: db}
}

// Create inserts the form and its field definitions in one transaction.
func (r *formRepository) Create(ctx context.Context, form *domain.Form) error {
	if form.ID == "" {
		form.ID = uuid.New().String()
	}
	form.CreatedAt = time.Now().UTC()
	if len(form.Settings) == 0 {
		form.Settings = []byte(`{}`)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO forms (id, tenant_id, website_id, name, settings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, form.ID, form.TenantID, form.WebsiteID, form.Name, []byte(form.Settings), form.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}

	for _, field := range form.Fields {
		if field.ID == "" {
			field.ID = uuid.New().String()
		}
		field.TenantID = form.TenantID
		field.FormID = form.ID

		var options interface{}
		if len(field.Options) > 0 {
			options = []byte(field.Options)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO form_fields (id, tenant_id, form_id, key, label, field_type, required, sort_order, options, placeholder)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, field.ID, field.TenantID, field.FormID, field.Key, field.Label,
			field.FieldType, field.Required, field.SortOrder, options, field.Placeholder)
		if err != nil {
			return fmt.Errorf("failed to create form field %q: %w", field.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit form: %w", err)
	}
	return nil
}

// GetByIDAndWebsite loads a form with its fields, scoped by website so a
// public caller can only read forms under the website its tracking id
// resolved to.
func (r *formRepository) GetByIDAndWebsite(ctx context.Context, id, websiteID string) (*domain.Form, error) {
	var form domain.Form
	var settings []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, website_id, name, settings, created_at
		FROM forms
		WHERE id = $1 AND website_id = $2
	`, id, websiteID).Scan(
		&form.ID,
		&form.TenantID,
		&form.WebsiteID,
		&form.Name,
		&settings,
		&form.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrFormNotFound{Message: "form not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	form.Settings = settings

	fields, err := r.loadFields(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	form.Fields = fields
	return &form, nil
}

func (r *formRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Form, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, website_id, name, settings, created_at
		FROM forms
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	var forms []*domain.Form
	for rows.Next() {
		var form domain.Form
		var settings []byte
		if err := rows.Scan(
			&form.ID,
			&form.TenantID,
			&form.WebsiteID,
			&form.Name,
			&settings,
			&form.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		form.Settings = settings
		forms = append(forms, &form)
	}
	return forms, rows.Err()
}

func (r *formRepository) loadFields(ctx context.Context, formID string) ([]*domain.FormField, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, form_id, key, label, field_type, required, sort_order, options, placeholder
		FROM form_fields
		WHERE form_id = $1
		ORDER BY sort_order ASC
	`, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load form fields: %w", err)
	}
	defer rows.Close()

	var fields []*domain.FormField
	for rows.Next() {
		var (
			field       domain.FormField
			options     []byte
			placeholder sql.NullString
		)
		if err := rows.Scan(
			&field.ID,
			&field.TenantID,
			&field.FormID,
			&field.Key,
			&field.Label,
			&field.FieldType,
			&field.Required,
			&field.SortOrder,
			&options,
			&placeholder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan form field: %w", err)
		}
		field.Options = options
		field.Placeholder = placeholder.String
		fields = append(fields, &field)
	}
	return fields, rows.Err()
}
