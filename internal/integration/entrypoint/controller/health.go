// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DependencyChecker reports whether a backing service is currently reachable.
type DependencyChecker func() bool

// HealthController reports the liveness of the API together with the two
// services a reconciliation run needs: the fiscal/movement store and the
// report cache.
type HealthController struct {
	storeChecker DependencyChecker
	cacheChecker DependencyChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	ReportCache string `json:"report_cache"`
	Timestamp   string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(storeChecker, cacheChecker DependencyChecker) *HealthController {
	return &HealthController{
		storeChecker: storeChecker,
		cacheChecker: cacheChecker,
	}
}

const (
	statusConnected    = "connected"
	statusDisconnected = "disconnected"
)

// Check handles GET /health requests. It always answers 200 so probes can
// tell a degraded dependency from a dead process; per-dependency state is
// reported in the body.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := dependencyStatus(h.storeChecker)
	cacheStatus := dependencyStatus(h.cacheChecker)

	status := "ok"
	if dbStatus != statusConnected || cacheStatus != statusConnected {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      status,
		Database:    dbStatus,
		ReportCache: cacheStatus,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

func dependencyStatus(check DependencyChecker) string {
	if check != nil && check() {
		return statusConnected
	}
	return statusDisconnected
}
