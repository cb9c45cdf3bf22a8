// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/concilia/backend/internal/integration/entrypoint/controller"
	"github.com/concilia/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	companyController        *controller.CompanyController
	movementController       *controller.MovementController
	reconciliationController *controller.ReconciliationController
	triggerRateLimiter       *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	companyController *controller.CompanyController,
	movementController *controller.MovementController,
	reconciliationController *controller.ReconciliationController,
	triggerRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:         healthController,
		companyController:        companyController,
		movementController:       movementController,
		reconciliationController: reconciliationController,
		triggerRateLimiter:       triggerRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.companyController != nil {
			v1.GET("/companies", r.companyController.List)
		}

		companies := v1.Group("/companies/:companyId")
		{
			if r.movementController != nil {
				companies.GET("/movements", r.movementController.List)
			}

			if r.reconciliationController != nil {
				// Triggering a run is the only expensive endpoint; it alone
				// is rate limited.
				if r.triggerRateLimiter != nil {
					companies.POST("/reconciliation",
						r.triggerRateLimiter.Middleware(),
						r.reconciliationController.TriggerRun)
				} else {
					companies.POST("/reconciliation", r.reconciliationController.TriggerRun)
				}
				companies.GET("/reconciliation/report", r.reconciliationController.GetReport)
				companies.GET("/reconciliation/amounts", r.reconciliationController.GetAmountGroups)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
