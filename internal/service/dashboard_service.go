package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/cache"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

const dashboardCacheTTL = 30 * time.Second

// DashboardService serves tenant aggregates through an explicit cache
// collaborator, keyed per tenant.
type DashboardService struct {
	repo   domain.DashboardRepository
	cache  cache.Cache
	logger logger.Logger
}

func NewDashboardService(repo domain.DashboardRepository, c cache.Cache, log logger.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		cache:  c,
		logger: log,
	}
}

func (s *DashboardService) GetStats(ctx context.Context, tenantID string) (*domain.DashboardStats, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DashboardService", "GetStats")
	defer span.End()

	key := fmt.Sprintf("dashboard:stats:%s", tenantID)
	value, err := s.cache.GetOrCompute(key, dashboardCacheTTL, func() (interface{}, error) {
		return s.repo.GetStats(ctx, tenantID)
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}
	return value.(*domain.DashboardStats), nil
}
