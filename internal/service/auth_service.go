package service

import (
	"context"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/minicrm/minicrm/config"
	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/pkg/crypto"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/tracing"
)

// loginFailedMessage is the single message for every credential failure so
// callers cannot probe which tenants or accounts exist.
const loginFailedMessage = "incorrect email or password"

type ErrLoginFailed struct{}

func (e *ErrLoginFailed) Error() string {
	return loginFailedMessage
}

// AuthService issues and verifies PASETO v4 access tokens and owns tenant
// registration and login.
type AuthService struct {
	tenantRepo domain.TenantRepository
	userRepo   domain.UserRepository
	eventBus   domain.EventBus
	logger     logger.Logger

	privateKey paseto.V4AsymmetricSecretKey
	publicKey  paseto.V4AsymmetricPublicKey
	tokenTTL   time.Duration
}

type AuthServiceConfig struct {
	TenantRepository domain.TenantRepository
	UserRepository   domain.UserRepository
	EventBus         domain.EventBus
	Logger           logger.Logger
	Security         *config.SecurityConfig
}

func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		tenantRepo: cfg.TenantRepository,
		userRepo:   cfg.UserRepository,
		eventBus:   cfg.EventBus,
		logger:     cfg.Logger,
		privateKey: cfg.Security.PasetoPrivateKey,
		publicKey:  cfg.Security.PasetoPublicKey,
		tokenTTL:   cfg.Security.AccessTokenTTL,
	}
}

// Register provisions a tenant with its system website and admin user in a
// single transaction.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AuthService", "Register")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pre-check the slug for a friendly failure; the unique constraint
	// still backstops concurrent registrations.
	if _, err := s.tenantRepo.GetBySlug(ctx, req.CompanySlug); err == nil {
		return nil, &domain.ErrSlugTaken{Message: "tenant slug already exists"}
	}

	passwordHash, err := crypto.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tenant := &domain.Tenant{
		Name: req.CompanyName,
		Slug: req.CompanySlug,
	}
	owner := &domain.User{
		Email:        req.AdminEmail,
		PasswordHash: passwordHash,
		Name:         req.AdminName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	systemWebsite := domain.NewSystemWebsite("")

	if err := s.tenantRepo.CreateWithOwner(ctx, tenant, systemWebsite, owner); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id": tenant.ID,
		"slug":      tenant.Slug,
	}).Info("Tenant registered")

	s.eventBus.Publish(ctx, domain.EventPayload{
		Type:     domain.EventTenantRegistered,
		TenantID: tenant.ID,
		EntityID: tenant.ID,
	})

	return owner, nil
}

// Login authenticates a principal inside a tenant. Unknown tenant, unknown
// email and wrong password all collapse to the same failure.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AuthService", "Login")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		return nil, &ErrLoginFailed{}
	}
	if !tenant.IsActive {
		return nil, domain.ErrUserInactive
	}

	user, err := s.userRepo.GetByEmailAndTenant(ctx, req.Email, tenant.ID)
	if err != nil {
		return nil, &ErrLoginFailed{}
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		s.logger.WithField("tenant_id", tenant.ID).Warn("Login failed: bad credentials")
		return nil, &ErrLoginFailed{}
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token := s.generateAccessToken(user)
	return &domain.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) string {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.tokenTTL))
	token.SetString("user_id", user.ID)
	token.SetString("tenant_id", user.TenantID)

	signed := token.V4Sign(s.privateKey, nil)
	if signed == "" {
		s.logger.WithField("user_id", user.ID).Error("Failed to sign access token")
	}
	return signed
}

// DecodeAuthToken verifies the token signature and registered claims. It
// never touches storage.
func (s *AuthService) DecodeAuthToken(token string) (*domain.TokenClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.NotExpired())

	verified, err := parser.ParseV4Public(s.publicKey, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	userID, err := verified.GetString("user_id")
	if err != nil || userID == "" {
		return nil, domain.ErrInvalidToken
	}
	tenantID, err := verified.GetString("tenant_id")
	if err != nil || tenantID == "" {
		return nil, domain.ErrInvalidToken
	}
	expiresAt, err := verified.GetExpiration()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		UserID:    userID,
		TenantID:  tenantID,
		ExpiresAt: expiresAt,
	}, nil
}

// AuthenticateUser decodes the token and re-resolves the principal from
// storage filtered by both the principal id and the claimed tenant id. A
// stale tenant claim therefore fails exactly like an unknown user.
func (s *AuthService) AuthenticateUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.DecodeAuthToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByIDAndTenant(ctx, claims.UserID, claims.TenantID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

// Authorize checks role-set membership. An empty allowed set means any
// authenticated principal passes.
func (s *AuthService) Authorize(user *domain.User, allowedRoles ...domain.UserRole) error {
	if len(allowedRoles) == 0 {
		return nil
	}
	for _, role := range allowedRoles {
		if user.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}
