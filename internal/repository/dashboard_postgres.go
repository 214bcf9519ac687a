package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/minicrm/minicrm/internal/domain"
)

type dashboardRepository struct {
	db *sql.DB
}

// NewDashboardRepository creates a new PostgreSQL dashboard repository
func NewDashboardRepository(db *sql.DB) domain.DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetStats aggregates the tenant's headline numbers. Pipeline value counts
// open deals only; won and lost stages are excluded.
func (r *dashboardRepository) GetStats(ctx context.Context, tenantID string) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{
		ContactsByStatus: make(map[string]int64),
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM contacts WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM deals WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM activities WHERE tenant_id = $1),
			(SELECT COALESCE(SUM(value), 0) FROM deals WHERE tenant_id = $1 AND stage NOT IN ('won', 'lost'))
	`, tenantID).Scan(
		&stats.ContactCount,
		&stats.DealCount,
		&stats.ActivityCount,
		&stats.PipelineValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
	}

	query, args, err := sq.Select("status", "COUNT(*)").
		From("contacts").
		Where(sq.Eq{"tenant_id": tenantID}).
		GroupBy("status").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build status breakdown query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query status breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status breakdown: %w", err)
		}
		stats.ContactsByStatus[status] = count
	}
	return stats, rows.Err()
}
