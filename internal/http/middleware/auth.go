package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/minicrm/minicrm/internal/domain"
)

// AuthMiddleware authenticates requests with Bearer access tokens. The
// tenant scope of a request comes exclusively from the token claims; no
// request parameter can widen it.
type AuthMiddleware struct {
	authService domain.AuthServiceInterface
}

func NewAuthMiddleware(authService domain.AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth verifies the Bearer token, re-resolves the principal from
// storage and stores it in the request context.
func (m *AuthMiddleware) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			user, err := m.authService.AuthenticateUser(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrInvalidToken):
					writeAuthError(w, "Invalid token", http.StatusUnauthorized)
				case errors.Is(err, domain.ErrUserInactive):
					writeAuthError(w, "Account is inactive", http.StatusUnauthorized)
				case errors.Is(err, domain.ErrUnauthorized):
					writeAuthError(w, "Unauthorized", http.StatusUnauthorized)
				default:
					writeAuthError(w, "Unauthorized", http.StatusUnauthorized)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRole composes RequireAuth with a role-set membership check.
func (m *AuthMiddleware) RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	requireAuth := m.RequireAuth()
	return func(next http.Handler) http.Handler {
		return requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := domain.UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := m.authService.Authorize(user, roles...); err != nil {
				writeAuthError(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeAuthError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
