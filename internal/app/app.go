package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/minicrm/minicrm/config"
	"github.com/minicrm/minicrm/internal/database"
	"github.com/minicrm/minicrm/internal/domain"
	httpHandler "github.com/minicrm/minicrm/internal/http"
	"github.com/minicrm/minicrm/internal/http/middleware"
	"github.com/minicrm/minicrm/internal/repository"
	"github.com/minicrm/minicrm/internal/service"
	"github.com/minicrm/minicrm/pkg/cache"
	"github.com/minicrm/minicrm/pkg/logger"
	"github.com/minicrm/minicrm/pkg/ratelimiter"
)

const cacheCleanupInterval = time.Minute

// App encapsulates the application dependencies and configuration.
type App struct {
	config   *config.Config
	logger   logger.Logger
	db       *sql.DB
	eventBus domain.EventBus
	cache    cache.Cache
	limiter  *ratelimiter.RateLimiter

	// Repositories
	tenantRepo     domain.TenantRepository
	userRepo       domain.UserRepository
	websiteRepo    domain.WebsiteRepository
	contactRepo    domain.ContactRepository
	formRepo       domain.FormRepository
	submissionRepo domain.SubmissionRepository
	dealRepo       domain.DealRepository
	activityRepo   domain.ActivityRepository
	auditRepo      domain.AuditRepository
	webhookRepo    domain.WebhookRepository
	dashboardRepo  domain.DashboardRepository

	// Services
	authService       *service.AuthService
	auditService      *service.AuditService
	contactService    *service.ContactService
	websiteService    *service.WebsiteService
	formService       *service.FormService
	submissionService *service.SubmissionService
	dealService       *service.DealService
	activityService   *service.ActivityService
	dashboardService  *service.DashboardService
	webhookService    *service.WebhookService

	mux    *http.ServeMux
	server *http.Server
}

type AppOption func(*App)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Initialize connects to the database and wires repositories, services and
// HTTP handlers.
func (a *App) Initialize() error {
	if err := a.initDB(); err != nil {
		return err
	}
	if err := a.initRepositories(); err != nil {
		return err
	}
	if err := a.initServices(); err != nil {
		return err
	}
	return a.initHandlers()
}

func (a *App) initDB() error {
	a.logger.WithFields(map[string]interface{}{
		"host":   a.config.Database.Host,
		"port":   a.config.Database.Port,
		"dbname": a.config.Database.DBName,
	}).Info("Connecting to database")

	db, err := database.ConnectToDB(&a.config.Database, a.config.Environment)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.db = db
	return nil
}

func (a *App) initRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.tenantRepo = repository.NewTenantRepository(a.db)
	a.userRepo = repository.NewUserRepository(a.db)
	a.websiteRepo = repository.NewWebsiteRepository(a.db)
	a.contactRepo = repository.NewContactRepository(a.db)
	a.formRepo = repository.NewFormRepository(a.db)
	a.submissionRepo = repository.NewSubmissionRepository(a.db)
	a.dealRepo = repository.NewDealRepository(a.db)
	a.activityRepo = repository.NewActivityRepository(a.db)
	a.auditRepo = repository.NewAuditRepository(a.db)
	a.webhookRepo = repository.NewWebhookRepository(a.db)
	a.dashboardRepo = repository.NewDashboardRepository(a.db)

	return nil
}

func (a *App) initServices() error {
	a.eventBus = domain.NewInMemoryEventBus()
	a.cache = cache.NewInMemoryCache(cacheCleanupInterval)

	a.limiter = ratelimiter.NewRateLimiter()
	a.limiter.SetPolicy("public_leads",
		a.config.RateLimit.PublicMaxRequests,
		a.config.RateLimit.PublicWindow)

	a.auditService = service.NewAuditService(a.auditRepo, a.logger)

	a.authService = service.NewAuthService(service.AuthServiceConfig{
		TenantRepository: a.tenantRepo,
		UserRepository:   a.userRepo,
		EventBus:         a.eventBus,
		Logger:           a.logger,
		Security:         &a.config.Security,
	})

	a.contactService = service.NewContactService(service.ContactServiceConfig{
		ContactRepository:  a.contactRepo,
		WebsiteRepository:  a.websiteRepo,
		DealRepository:     a.dealRepo,
		ActivityRepository: a.activityRepo,
		AuditService:       a.auditService,
		EventBus:           a.eventBus,
		Logger:             a.logger,
	})

	a.websiteService = service.NewWebsiteService(a.websiteRepo, a.auditService, a.logger)
	a.formService = service.NewFormService(a.formRepo, a.websiteRepo, a.auditService, a.logger)

	a.submissionService = service.NewSubmissionService(service.SubmissionServiceConfig{
		SubmissionRepository: a.submissionRepo,
		FormRepository:       a.formRepo,
		ContactService:       a.contactService,
		AuditService:         a.auditService,
		EventBus:             a.eventBus,
		Logger:               a.logger,
	})

	a.dealService = service.NewDealService(service.DealServiceConfig{
		DealRepository:    a.dealRepo,
		ContactRepository: a.contactRepo,
		AuditService:      a.auditService,
		EventBus:          a.eventBus,
		Logger:            a.logger,
	})

	a.activityService = service.NewActivityService(a.activityRepo, a.contactRepo, a.logger)
	a.dashboardService = service.NewDashboardService(a.dashboardRepo, a.cache, a.logger)
	a.webhookService = service.NewWebhookService(a.webhookRepo, a.auditService, a.logger)

	return nil
}

func (a *App) initHandlers() error {
	a.mux = http.NewServeMux()

	auth := middleware.NewAuthMiddleware(a.authService)
	rateLimit := middleware.NewRateLimitMiddleware(a.limiter)

	authHandler := httpHandler.NewAuthHandler(a.authService, a.logger)
	contactHandler := httpHandler.NewContactHandler(a.contactService, auth, a.logger)
	websiteHandler := httpHandler.NewWebsiteHandler(a.websiteService, auth, a.logger)
	formHandler := httpHandler.NewFormHandler(a.formService, auth, a.logger)
	dealHandler := httpHandler.NewDealHandler(a.dealService, auth, a.logger)
	activityHandler := httpHandler.NewActivityHandler(a.activityService, auth, a.logger)
	dashboardHandler := httpHandler.NewDashboardHandler(a.dashboardService, auth, a.logger)
	auditHandler := httpHandler.NewAuditHandler(a.auditService, auth, a.logger)
	webhookHandler := httpHandler.NewWebhookHandler(a.webhookService, auth, a.logger)
	publicHandler := httpHandler.NewPublicHandler(httpHandler.PublicHandlerConfig{
		TenantRepository:  a.tenantRepo,
		ContactService:    a.contactService,
		WebsiteService:    a.websiteService,
		FormService:       a.formService,
		SubmissionService: a.submissionService,
		OriginValidator:   service.NewOriginValidator(),
		RateLimit:         rateLimit,
		Logger:            a.logger,
	})

	authHandler.RegisterRoutes(a.mux)
	contactHandler.RegisterRoutes(a.mux)
	websiteHandler.RegisterRoutes(a.mux)
	formHandler.RegisterRoutes(a.mux)
	dealHandler.RegisterRoutes(a.mux)
	activityHandler.RegisterRoutes(a.mux)
	dashboardHandler.RegisterRoutes(a.mux)
	auditHandler.RegisterRoutes(a.mux)
	webhookHandler.RegisterRoutes(a.mux)
	publicHandler.RegisterRoutes(a.mux)

	return nil
}

// GetMux exposes the router, mainly for tests.
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB exposes the database handle, mainly for tests.
func (a *App) GetDB() *sql.DB {
	return a.db
}

// Start starts the HTTP server and blocks until it stops.
func (a *App) Start() error {
	handler := middleware.CORSMiddleware(a.mux)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info("Server starting")

	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully stops the server and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown")

	var shutdownErr error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("failed to shut down server: %w", err)
		}
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.cache != nil {
		a.cache.Stop()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && shutdownErr == nil {
			shutdownErr = fmt.Errorf("failed to close database: %w", err)
		}
	}

	a.logger.Info("Shutdown complete")
	return shutdownErr
}
