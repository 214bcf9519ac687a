package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/minicrm/minicrm/internal/domain"
)

// Hand-written testify mocks for the repository interfaces, shared by the
// service tests.

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) CreateWithOwner(ctx context.Context, tenant *domain.Tenant, systemWebsite *domain.Website, owner *domain.User) error {
	args := m.Called(ctx, tenant, systemWebsite, owner)
	return args.Error(0)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*domain.User, error) {
	args := m.Called(ctx, email, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.User, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockWebsiteRepository struct {
	mock.Mock
}

func (m *MockWebsiteRepository) Create(ctx context.Context, website *domain.Website) error {
	args := m.Called(ctx, website)
	return args.Error(0)
}

func (m *MockWebsiteRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Website, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Website), args.Error(1)
}

func (m *MockWebsiteRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.Website, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Website), args.Error(1)
}

func (m *MockWebsiteRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Website, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Website), args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) ResolveOrCreate(ctx context.Context, contact *domain.Contact, fallbackWebsite *domain.Website) (string, bool, error) {
	args := m.Called(ctx, contact, fallbackWebsite)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockContactRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.Contact, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, tenantID string, params domain.ListContactsParams) ([]*domain.Contact, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, tenantID, id string, update *domain.UpdateContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, tenantID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *domain.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByIDAndWebsite(ctx context.Context, id, websiteID string) (*domain.Form, error) {
	args := m.Called(ctx, id, websiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Form), args.Error(1)
}

func (m *MockFormRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Form, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Form), args.Error(1)
}

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) CreateWithActivity(ctx context.Context, submission *domain.FormSubmission, activity *domain.Activity) error {
	args := m.Called(ctx, submission, activity)
	return args.Error(0)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*domain.Deal, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Deal, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ListByContact(ctx context.Context, tenantID, contactID string) ([]*domain.Deal, error) {
	args := m.Called(ctx, tenantID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) Update(ctx context.Context, tenantID, id string, update *domain.UpdateDealRequest) (*domain.Deal, error) {
	args := m.Called(ctx, tenantID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByContact(ctx context.Context, tenantID, contactID string, limit int) ([]*domain.Activity, error) {
	args := m.Called(ctx, tenantID, contactID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountByContact(ctx context.Context, tenantID, contactID string) (int64, error) {
	args := m.Called(ctx, tenantID, contactID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, tenantID string, params domain.ListAuditParams) ([]*domain.AuditEvent, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEvent), args.Error(1)
}

type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) Create(ctx context.Context, subscription *domain.WebhookSubscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockWebhookRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.WebhookSubscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WebhookSubscription), args.Error(1)
}

func (m *MockWebhookRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) GetStats(ctx context.Context, tenantID string) (*domain.DashboardStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
