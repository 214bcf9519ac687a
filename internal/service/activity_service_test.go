package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/repository"
	"github.com/minicrm/minicrm/pkg/logger"
)

func newActivityServiceForTest() (*ActivityService, *repository.MockActivityRepository, *repository.MockContactRepository) {
	repo := new(repository.MockActivityRepository)
	contactRepo := new(repository.MockContactRepository)
	svc := NewActivityService(repo, contactRepo, logger.NewLoggerWithLevel("error"))
	return svc, repo, contactRepo
}

func TestActivityService_Create(t *testing.T) {
	t.Run("records the acting user", func(t *testing.T) {
		svc, repo, contactRepo := newActivityServiceForTest()

		contactRepo.On("GetByIDAndTenant", mock.Anything, "contact-1", "tenant-1").
			Return(&domain.Contact{ID: "contact-1", TenantID: "tenant-1"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(activity *domain.Activity) bool {
			return activity.UserID != nil && *activity.UserID == "user-1" &&
				activity.Type == domain.ActivityTypeCall
		})).Return(nil)

		activity, err := svc.Create(context.Background(), "tenant-1", &domain.CreateActivityRequest{
			ContactID: "contact-1",
			Type:      domain.ActivityTypeCall,
			Content:   "Intro call",
		}, "user-1")
		require.NoError(t, err)
		require.NotNil(t, activity.UserID)
		assert.Equal(t, "user-1", *activity.UserID)
	})

	t.Run("defaults the type to note", func(t *testing.T) {
		svc, repo, contactRepo := newActivityServiceForTest()

		contactRepo.On("GetByIDAndTenant", mock.Anything, "contact-1", "tenant-1").
			Return(&domain.Contact{ID: "contact-1", TenantID: "tenant-1"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(activity *domain.Activity) bool {
			return activity.Type == domain.ActivityTypeNote
		})).Return(nil)

		_, err := svc.Create(context.Background(), "tenant-1", &domain.CreateActivityRequest{
			ContactID: "contact-1",
			Content:   "Followed up by mail",
		}, "user-1")
		require.NoError(t, err)
	})

	t.Run("rejects a contact from another tenant before writing", func(t *testing.T) {
		svc, repo, contactRepo := newActivityServiceForTest()

		contactRepo.On("GetByIDAndTenant", mock.Anything, "contact-9", "tenant-1").
			Return(nil, &domain.ErrContactNotFound{Message: "contact not found"})

		_, err := svc.Create(context.Background(), "tenant-1", &domain.CreateActivityRequest{
			ContactID: "contact-9",
			Type:      domain.ActivityTypeNote,
		}, "user-1")

		var notFound *domain.ErrContactNotFound
		require.ErrorAs(t, err, &notFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestActivityService_ListByContact(t *testing.T) {
	svc, repo, contactRepo := newActivityServiceForTest()

	contactRepo.On("GetByIDAndTenant", mock.Anything, "contact-9", "tenant-1").
		Return(nil, &domain.ErrContactNotFound{Message: "contact not found"})

	_, err := svc.ListByContact(context.Background(), "tenant-1", "contact-9", 10)

	var notFound *domain.ErrContactNotFound
	require.ErrorAs(t, err, &notFound)
	repo.AssertNotCalled(t, "ListByContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
