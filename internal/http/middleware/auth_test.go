package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/service"
)

func okHandler(t *testing.T, gotUser **domain.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := domain.UserFromContext(r.Context())
		require.True(t, ok)
		*gotUser = user
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Run("stores the authenticated user in context", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		user := &domain.User{ID: "user-1", TenantID: "tenant-1", Role: domain.RoleAdmin}
		authSvc.On("AuthenticateUser", mock.Anything, "good-token").Return(user, nil)

		var gotUser *domain.User
		handler := NewAuthMiddleware(authSvc).RequireAuth()(okHandler(t, &gotUser))

		req := httptest.NewRequest(http.MethodGet, "/api/contacts.list", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotUser)
		assert.Equal(t, "tenant-1", gotUser.TenantID)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		handler := NewAuthMiddleware(authSvc).RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/contacts.list", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		authSvc.AssertNotCalled(t, "AuthenticateUser", mock.Anything, mock.Anything)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		authSvc.On("AuthenticateUser", mock.Anything, "bad-token").Return(nil, domain.ErrInvalidToken)

		handler := NewAuthMiddleware(authSvc).RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/contacts.list", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stale tenant claim is unauthorized, not not-found", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		authSvc.On("AuthenticateUser", mock.Anything, "stale-token").Return(nil, domain.ErrUnauthorized)

		handler := NewAuthMiddleware(authSvc).RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/contacts.list", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "not found")
	})

	t.Run("malformed authorization header is rejected", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		handler := NewAuthMiddleware(authSvc).RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/contacts.list", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	t.Run("allowed role passes", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		admin := &domain.User{ID: "user-1", TenantID: "tenant-1", Role: domain.RoleAdmin}
		authSvc.On("AuthenticateUser", mock.Anything, "token").Return(admin, nil)
		authSvc.On("Authorize", admin, domain.RoleAdmin).Return(nil)

		var gotUser *domain.User
		handler := NewAuthMiddleware(authSvc).RequireRole(domain.RoleAdmin)(okHandler(t, &gotUser))

		req := httptest.NewRequest(http.MethodGet, "/api/audit.list", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is forbidden", func(t *testing.T) {
		authSvc := new(service.MockAuthService)
		viewer := &domain.User{ID: "user-2", TenantID: "tenant-1", Role: domain.RoleViewer}
		authSvc.On("AuthenticateUser", mock.Anything, "token").Return(viewer, nil)
		authSvc.On("Authorize", viewer, domain.RoleAdmin).Return(domain.ErrForbidden)

		handler := NewAuthMiddleware(authSvc).RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/audit.list", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
