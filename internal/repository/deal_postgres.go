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

type dealRepository struct {
	db *sql.DB
}

// NewDealRepository creates a new PostgreSQL deal repository
func NewDealRepository(db *sql.DB) domain.DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	query := `
		INSERT INTO deals (id, tenant_id, contact_id, title, value, stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		deal.ID, deal.TenantID, deal.ContactID, deal.Title, deal.Value,
		deal.Stage, deal.CreatedAt, deal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

func (r *dealRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.Deal, error) {
	query := `
		SELECT id, tenant_id, contact_id, title, value, stage, created_at, updated_at
		FROM deals
		WHERE id = $1 AND tenant_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, tenantID)
	deal, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrDealNotFound{Message: "deal not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return deal, nil
}

func (r *dealRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Deal, error) {
	return r.list(ctx, sq.Eq{"tenant_id": tenantID})
}

func (r *dealRepository) ListByContact(ctx context.Context, tenantID, contactID string) ([]*domain.Deal, error) {
	return r.list(ctx, sq.Eq{"tenant_id": tenantID, "contact_id": contactID})
}

func (r *dealRepository) list(ctx context.Context, where sq.Eq) ([]*domain.Deal, error) {
	query, args, err := sq.Select("id", "tenant_id", "contact_id", "title", "value", "stage", "created_at", "updated_at").
		From("deals").
		Where(where).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build deal query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	var deals []*domain.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

func (r *dealRepository) Update(ctx context.Context, tenantID, id string, update *domain.UpdateDealRequest) (*domain.Deal, error) {
	builder := sq.Update("deals").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		Suffix("RETURNING id, tenant_id, contact_id, title, value, stage, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Value != nil {
		builder = builder.Set("value", *update.Value)
	}
	if update.Stage != nil {
		builder = builder.Set("stage", *update.Stage)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build deal update: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	deal, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrDealNotFound{Message: "deal not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}
	return deal, nil
}

func (r *dealRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM deals WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if affected == 0 {
		return &domain.ErrDealNotFound{Message: "deal not found"}
	}
	return nil
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	var deal domain.Deal
	err := row.Scan(
		&deal.ID,
		&deal.TenantID,
		&deal.ContactID,
		&deal.Title,
		&deal.Value,
		&deal.Stage,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}
