package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/repository"
	"github.com/minicrm/minicrm/pkg/logger"
)

func TestAuditService_Emit(t *testing.T) {
	t.Run("writes the event asynchronously", func(t *testing.T) {
		repo := new(repository.MockAuditRepository)
		svc := NewAuditService(repo, logger.NewLoggerWithLevel("error"))

		var wg sync.WaitGroup
		wg.Add(1)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *domain.AuditEvent) bool {
			return e.TenantID == "tenant-1" &&
				e.Action == "contact.created" &&
				e.UserID != nil && *e.UserID == "user-1"
		})).Run(func(mock.Arguments) { wg.Done() }).Return(nil)

		svc.Emit("tenant-1", "contact.created", "contact", "contact-1", "user-1", nil)

		waitTimeout(t, &wg, time.Second)
		repo.AssertExpectations(t)
	})

	t.Run("anonymous emit carries a nil user id", func(t *testing.T) {
		repo := new(repository.MockAuditRepository)
		svc := NewAuditService(repo, logger.NewLoggerWithLevel("error"))

		var wg sync.WaitGroup
		wg.Add(1)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *domain.AuditEvent) bool {
			return e.UserID == nil
		})).Run(func(mock.Arguments) { wg.Done() }).Return(nil)

		svc.Emit("tenant-1", "contact.seen", "contact", "contact-1", "", nil)
		waitTimeout(t, &wg, time.Second)
	})

	t.Run("insert failure is swallowed", func(t *testing.T) {
		repo := new(repository.MockAuditRepository)
		svc := NewAuditService(repo, logger.NewLoggerWithLevel("error"))

		var wg sync.WaitGroup
		wg.Add(1)
		repo.On("Insert", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { wg.Done() }).Return(assert.AnError)

		// Must not panic or block the caller.
		svc.Emit("tenant-1", "contact.created", "contact", "contact-1", "", nil)
		waitTimeout(t, &wg, time.Second)
	})
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		require.FailNow(t, "timed out waiting for async audit write")
	}
}
