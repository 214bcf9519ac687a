package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/minicrm/minicrm/internal/domain"
)

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new PostgreSQL contact repository
func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

const contactUpsertQuery = `
	INSERT INTO contacts (id, tenant_id, website_id, email, name, phone, source, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (tenant_id, email) WHERE email IS NOT NULL
	DO UPDATE SET updated_at = EXCLUDED.updated_at
	RETURNING id, (xmax = 0)
`

const contactInsertQuery = `
	INSERT INTO contacts (id, tenant_id, website_id, email, name, phone, source, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id
`

// ResolveOrCreate writes a contact sighting atomically. The website
// attribution, the system-website self-heal and the create-or-touch upsert
// share one transaction, so a lost self-heal race surfaces as a retryable
// error instead of a duplicate website.
//
// With an email, the upsert refreshes only updated_at on conflict; name,
// phone, source and status of the existing row are left untouched. The
// created flag comes from xmax: zero means the row was inserted by this
// statement.
func (r *contactRepository) ResolveOrCreate(ctx context.Context, contact *domain.Contact, fallbackWebsite *domain.Website) (string, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if contact.WebsiteID == "" {
		websiteID, err := r.resolveSystemWebsite(ctx, tx, contact.TenantID, fallbackWebsite)
		if err != nil {
			return "", false, err
		}
		contact.WebsiteID = websiteID
	}

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.Status == "" {
		contact.Status = domain.ContactStatusNew
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	var (
		id      string
		created bool
	)
	if contact.Email != "" {
		err = tx.QueryRowContext(ctx, contactUpsertQuery,
			contact.ID, contact.TenantID, contact.WebsiteID, contact.Email,
			contact.Name, contact.Phone, contact.Source, contact.Status,
			contact.CreatedAt, contact.UpdatedAt,
		).Scan(&id, &created)
	} else {
		// No email means no deduplication key; every sighting is a new row.
		created = true
		err = tx.QueryRowContext(ctx, contactInsertQuery,
			contact.ID, contact.TenantID, contact.WebsiteID, nil,
			contact.Name, contact.Phone, contact.Source, contact.Status,
			contact.CreatedAt, contact.UpdatedAt,
		).Scan(&id)
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to upsert contact: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("failed to commit contact: %w", err)
	}
	return id, created, nil
}

// resolveSystemWebsite finds the tenant's system website inside tx,
// recreating it when the row went missing.
func (r *contactRepository) resolveSystemWebsite(ctx context.Context, tx *sql.Tx, tenantID string, fallback *domain.Website) (string, error) {
	var websiteID string
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM websites
		WHERE tenant_id = $1 AND is_system = TRUE
	`, tenantID).Scan(&websiteID)
	if err == nil {
		return websiteID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up system website: %w", err)
	}
	if fallback == nil {
		return "", &domain.ErrWebsiteNotFound{Message: "tenant has no system website"}
	}

	fallback.TenantID = tenantID
	fallback.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO websites (id, tenant_id, domain, name, tracking_id, is_system, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, fallback.ID, fallback.TenantID, fallback.Domain, fallback.Name,
		fallback.TrackingID, fallback.IsSystem, fallback.IsActive, fallback.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to recreate system website: %w", err)
	}
	return fallback.ID, nil
}

func (r *contactRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.Contact, error) {
	query := `
		SELECT id, tenant_id, website_id, email, name, phone, source, status, created_at, updated_at
		FROM contacts
		WHERE id = $1 AND tenant_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, tenantID)
	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrContactNotFound{Message: "contact not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

func (r *contactRepository) List(ctx context.Context, tenantID string, params domain.ListContactsParams) ([]*domain.Contact, error) {
	builder := sq.Select("id", "tenant_id", "website_id", "email", "name", "phone", "source", "status", "created_at", "updated_at").
		From("contacts").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if params.Status != "" {
		builder = builder.Where(sq.Eq{"status": params.Status})
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}
	if params.Limit > 0 {
		builder = builder.Limit(uint64(params.Limit))
	}
	if params.Offset > 0 {
		builder = builder.Offset(uint64(params.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) Update(ctx context.Context, tenantID, id string, update *domain.UpdateContactRequest) (*domain.Contact, error) {
	builder := sq.Update("contacts").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		Suffix("RETURNING id, tenant_id, website_id, email, name, phone, source, status, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Phone != nil {
		builder = builder.Set("phone", *update.Phone)
	}
	if update.Source != nil {
		builder = builder.Set("source", *update.Source)
	}
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact update: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrContactNotFound{Message: "contact not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

func (r *contactRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM contacts WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if affected == 0 {
		return &domain.ErrContactNotFound{Message: "contact not found"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		contact domain.Contact
		email   sql.NullString
		phone   sql.NullString
		source  sql.NullString
	)
	err := row.Scan(
		&contact.ID,
		&contact.TenantID,
		&contact.WebsiteID,
		&email,
		&contact.Name,
		&phone,
		&source,
		&contact.Status,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	contact.Email = email.String
	contact.Phone = phone.String
	contact.Source = source.String
	return &contact, nil
}
