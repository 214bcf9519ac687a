package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/repository"
	"github.com/minicrm/minicrm/pkg/cache"
	"github.com/minicrm/minicrm/pkg/logger"
)

func TestDashboardService_GetStats(t *testing.T) {
	t.Run("caches per tenant", func(t *testing.T) {
		repo := new(repository.MockDashboardRepository)
		c := cache.NewInMemoryCache(time.Minute)
		defer c.Stop()
		svc := NewDashboardService(repo, c, logger.NewLoggerWithLevel("error"))

		stats := &domain.DashboardStats{ContactCount: 3, PipelineValue: 1500}
		otherStats := &domain.DashboardStats{ContactCount: 9}
		repo.On("GetStats", mock.Anything, "tenant-1").Return(stats, nil).Once()
		repo.On("GetStats", mock.Anything, "tenant-2").Return(otherStats, nil).Once()

		for i := 0; i < 3; i++ {
			got, err := svc.GetStats(context.Background(), "tenant-1")
			require.NoError(t, err)
			assert.Equal(t, int64(3), got.ContactCount)
		}
		got, err := svc.GetStats(context.Background(), "tenant-2")
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ContactCount)

		repo.AssertExpectations(t)
	})

	t.Run("repository errors are not cached", func(t *testing.T) {
		repo := new(repository.MockDashboardRepository)
		c := cache.NewInMemoryCache(time.Minute)
		defer c.Stop()
		svc := NewDashboardService(repo, c, logger.NewLoggerWithLevel("error"))

		repo.On("GetStats", mock.Anything, "tenant-1").
			Return(nil, assert.AnError).Once()
		repo.On("GetStats", mock.Anything, "tenant-1").
			Return(&domain.DashboardStats{ContactCount: 1}, nil).Once()

		_, err := svc.GetStats(context.Background(), "tenant-1")
		require.Error(t, err)

		got, err := svc.GetStats(context.Background(), "tenant-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ContactCount)
	})
}
