// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/concilia/backend/config"
	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/application/usecase/company"
	"github.com/concilia/backend/internal/application/usecase/movement"
	"github.com/concilia/backend/internal/application/usecase/reconciliation"
	"github.com/concilia/backend/internal/infra/db"
	"github.com/concilia/backend/internal/infra/server/router"
	"github.com/concilia/backend/internal/integration/entrypoint/controller"
	"github.com/concilia/backend/internal/integration/entrypoint/middleware"
	"github.com/concilia/backend/internal/integration/persistence"
	"github.com/concilia/backend/internal/integration/persistence/cache"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client) *Injector {
	gormDB := database.DB()

	// Create repositories
	companyRepo := persistence.NewCompanyRepository(gormDB)
	movementRepo := persistence.NewMovementRepository(gormDB)
	documentRepo := persistence.NewDocumentRepository(gormDB)
	outcomeRepo := persistence.NewOutcomeRepository(gormDB)
	reportCache := cache.NewReportCache(redisClient)

	clock := adapter.SystemClock{}

	// Create use cases
	triggerRunUseCase := reconciliation.NewTriggerRunUseCase(
		companyRepo,
		movementRepo,
		documentRepo,
		outcomeRepo,
		reportCache,
		clock,
		cfg.Reconciliation.ReportTTL,
	)
	getReportUseCase := reconciliation.NewGetReportUseCase(reportCache)
	getAmountGroupsUseCase := reconciliation.NewGetAmountGroupsUseCase(movementRepo, documentRepo)
	listMovementsUseCase := movement.NewListMovementsUseCase(movementRepo)
	listCompaniesUseCase := company.NewListCompaniesUseCase(companyRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		database.HealthCheck,
		func() bool {
			return redisClient.Ping(context.Background()).Err() == nil
		},
	)

	reconciliationController := controller.NewReconciliationController(
		triggerRunUseCase,
		getReportUseCase,
		getAmountGroupsUseCase,
	)
	movementController := controller.NewMovementController(listMovementsUseCase)
	companyController := controller.NewCompanyController(listCompaniesUseCase)

	// Create middleware
	// Use a higher rate limit for test environments to prevent flaky tests
	var triggerRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		triggerRateLimiter = middleware.NewRateLimiterWithConfig(1000, cfg.Reconciliation.TriggerWindow)
	} else {
		triggerRateLimiter = middleware.NewRateLimiterWithConfig(
			cfg.Reconciliation.TriggerMaxAttempts,
			cfg.Reconciliation.TriggerWindow,
		)
	}

	// Create router
	r := router.NewRouter(
		healthController,
		companyController,
		movementController,
		reconciliationController,
		triggerRateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     gormDB,
		Router: r,
	}
}
