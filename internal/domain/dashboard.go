package domain

import "context"

// DashboardStats are the tenant-level aggregates shown on the dashboard.
type DashboardStats struct {
	ContactCount     int64            `json:"contact_count"`
	DealCount        int64            `json:"deal_count"`
	ActivityCount    int64            `json:"activity_count"`
	PipelineValue    float64          `json:"pipeline_value"`
	ContactsByStatus map[string]int64 `json:"contacts_by_status"`
}

type DashboardRepository interface {
	GetStats(ctx context.Context, tenantID string) (*DashboardStats, error)
}

type DashboardServiceInterface interface {
	GetStats(ctx context.Context, tenantID string) (*DashboardStats, error)
}
