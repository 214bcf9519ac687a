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

func newFormServiceForTest() (*FormService, *repository.MockFormRepository, *repository.MockWebsiteRepository, *MockAuditService) {
	repo := new(repository.MockFormRepository)
	websiteRepo := new(repository.MockWebsiteRepository)
	auditSvc := new(MockAuditService)
	svc := NewFormService(repo, websiteRepo, auditSvc, logger.NewLoggerWithLevel("error"))
	return svc, repo, websiteRepo, auditSvc
}

func TestFormService_Create(t *testing.T) {
	t.Run("creates a form with ordered fields", func(t *testing.T) {
		svc, repo, websiteRepo, auditSvc := newFormServiceForTest()

		websiteRepo.On("GetByIDAndTenant", mock.Anything, "website-1", "tenant-1").
			Return(&domain.Website{ID: "website-1", TenantID: "tenant-1"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(form *domain.Form) bool {
			return form.TenantID == "tenant-1" && len(form.Fields) == 2 &&
				form.Fields[0].Key == "email" && form.Fields[1].Key == "message"
		})).Return(nil)
		auditSvc.On("Emit", "tenant-1", "form.created", "form", mock.Anything, "", mock.Anything).Return()

		form, err := svc.Create(context.Background(), "tenant-1", &domain.CreateFormRequest{
			WebsiteID: "website-1",
			Name:      "Contact Us",
			Fields: []domain.CreateFormField{
				{Key: "email", Label: "Email", FieldType: domain.FieldTypeEmail, Required: true, SortOrder: 0},
				{Key: "message", Label: "Message", FieldType: domain.FieldTypeTextarea, SortOrder: 1},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Contact Us", form.Name)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a website from another tenant before writing", func(t *testing.T) {
		svc, repo, websiteRepo, _ := newFormServiceForTest()

		websiteRepo.On("GetByIDAndTenant", mock.Anything, "website-9", "tenant-1").
			Return(nil, &domain.ErrWebsiteNotFound{Message: "website not found"})

		_, err := svc.Create(context.Background(), "tenant-1", &domain.CreateFormRequest{
			WebsiteID: "website-9",
			Name:      "Contact Us",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestFormService_GetPublicForm(t *testing.T) {
	svc, repo, _, _ := newFormServiceForTest()

	repo.On("GetByIDAndWebsite", mock.Anything, "form-1", "website-1").
		Return(&domain.Form{ID: "form-1", WebsiteID: "website-1", Name: "Contact Us"}, nil)

	form, err := svc.GetPublicForm(context.Background(), "form-1", "website-1")
	require.NoError(t, err)
	assert.Equal(t, "form-1", form.ID)
}
