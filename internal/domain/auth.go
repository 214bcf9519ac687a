package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

type contextKey string

// AuthUserKey stores the authenticated *User in the request context.
const AuthUserKey contextKey = "auth_user"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and expiry.
	// Terminal: the caller must re-authenticate.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthorized is returned when the (principal id, tenant id) pair
	// claimed by a token no longer matches storage. The caller must not
	// learn whether the id or the tenant was the mismatch.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserInactive is returned for a deactivated principal.
	ErrUserInactive = errors.New("account is inactive")

	// ErrForbidden is returned when a valid principal lacks the role
	// required by the operation.
	ErrForbidden = errors.New("insufficient permissions")
)

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	UserID    string
	TenantID  string
	ExpiresAt time.Time
}

type RegisterRequest struct {
	CompanyName   string `json:"company_name"`
	CompanySlug   string `json:"company_slug"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminName     string `json:"admin_name"`
}

func (r *RegisterRequest) Validate() error {
	r.CompanySlug = strings.ToLower(strings.TrimSpace(r.CompanySlug))
	r.AdminEmail = strings.ToLower(strings.TrimSpace(r.AdminEmail))

	if strings.TrimSpace(r.CompanyName) == "" {
		return fmt.Errorf("company_name is required")
	}
	if !IsValidSlug(r.CompanySlug) {
		return fmt.Errorf("company_slug must be 3-63 lowercase alphanumeric characters or hyphens")
	}
	if !govalidator.IsEmail(r.AdminEmail) {
		return fmt.Errorf("admin_email is not a valid email address")
	}
	if len(r.AdminPassword) < 8 {
		return fmt.Errorf("admin_password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	TenantSlug string `json:"tenant_slug"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.TenantSlug = strings.ToLower(strings.TrimSpace(r.TenantSlug))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.TenantSlug == "" {
		return fmt.Errorf("tenant_slug is required")
	}
	if !govalidator.IsEmail(r.Email) {
		return fmt.Errorf("email is not a valid email address")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthServiceInterface is the surface handlers and middleware depend on.
type AuthServiceInterface interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// DecodeAuthToken is purely cryptographic: no storage access.
	DecodeAuthToken(token string) (*TokenClaims, error)

	// AuthenticateUser decodes the token then re-resolves the principal
	// from storage scoped by both principal id and claimed tenant id.
	AuthenticateUser(ctx context.Context, token string) (*User, error)

	// Authorize is a pure role-set membership check.
	Authorize(user *User, allowedRoles ...UserRole) error
}

// UserFromContext returns the authenticated user stored by the auth
// middleware, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(AuthUserKey).(*User)
	return user, ok
}

// ContextWithUser stores the authenticated user in ctx.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, AuthUserKey, user)
}
