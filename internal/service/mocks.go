package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/minicrm/minicrm/internal/domain"
)

// Hand-written testify mocks for the service interfaces, shared by the
// HTTP handler tests.

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthService) DecodeAuthToken(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}

func (m *MockAuthService) AuthenticateUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Authorize(user *domain.User, allowedRoles ...domain.UserRole) error {
	callArgs := make([]interface{}, 0, len(allowedRoles)+1)
	callArgs = append(callArgs, user)
	for _, role := range allowedRoles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) ResolveOrCreate(ctx context.Context, tenantID string, req *domain.CreateContactRequest, actorID string) (string, bool, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockContactService) Get(ctx context.Context, tenantID, id string) (*domain.Contact, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context, tenantID string, params domain.ListContactsParams) ([]*domain.Contact, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contact), args.Error(1)
}

func (m *MockContactService) Update(ctx context.Context, tenantID, id string, req *domain.UpdateContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactService) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContactService) Summary(ctx context.Context, tenantID, id string) (*domain.ContactSummary, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactSummary), args.Error(1)
}

type MockWebsiteService struct {
	mock.Mock
}

func (m *MockWebsiteService) Create(ctx context.Context, tenantID string, req *domain.CreateWebsiteRequest) (*domain.Website, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Website), args.Error(1)
}

func (m *MockWebsiteService) List(ctx context.Context, tenantID string) ([]*domain.Website, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Website), args.Error(1)
}

func (m *MockWebsiteService) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Website, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Website), args.Error(1)
}

type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) Create(ctx context.Context, tenantID string, req *domain.CreateFormRequest) (*domain.Form, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Form), args.Error(1)
}

func (m *MockFormService) List(ctx context.Context, tenantID string) ([]*domain.Form, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Form), args.Error(1)
}

func (m *MockFormService) GetPublicForm(ctx context.Context, formID, websiteID string) (*domain.Form, error) {
	args := m.Called(ctx, formID, websiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Form), args.Error(1)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) HandleSubmission(ctx context.Context, website *domain.Website, req *domain.CreateSubmissionRequest, meta *domain.SubmissionMeta) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, website, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResult), args.Error(1)
}

type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) Create(ctx context.Context, tenantID string, req *domain.CreateDealRequest, actorID string) (*domain.Deal, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) List(ctx context.Context, tenantID string) ([]*domain.Deal, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deal), args.Error(1)
}

func (m *MockDealService) Update(ctx context.Context, tenantID, id string, req *domain.UpdateDealRequest) (*domain.Deal, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Create(ctx context.Context, tenantID string, req *domain.CreateActivityRequest, actorID string) (*domain.Activity, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityService) ListByContact(ctx context.Context, tenantID, contactID string, limit int) ([]*domain.Activity, error) {
	args := m.Called(ctx, tenantID, contactID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStats(ctx context.Context, tenantID string) (*domain.DashboardStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Emit(tenantID, action, entityType, entityID string, userID string, metadata map[string]interface{}) {
	m.Called(tenantID, action, entityType, entityID, userID, metadata)
}

func (m *MockAuditService) List(ctx context.Context, tenantID string, params domain.ListAuditParams) ([]*domain.AuditEvent, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEvent), args.Error(1)
}

type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) Create(ctx context.Context, tenantID string, req *domain.CreateWebhookRequest) (*domain.WebhookSubscription, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookSubscription), args.Error(1)
}

func (m *MockWebhookService) List(ctx context.Context, tenantID string) ([]*domain.WebhookSubscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WebhookSubscription), args.Error(1)
}

func (m *MockWebhookService) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
