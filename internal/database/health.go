package database

import (
	"context"
	"fmt"
	"time"

	"github.com/chybatronik/driftiAPI/internal/handlers"
)

const healthCheckTimeout = 5 * time.Second

// HealthChecker implements database health checking with timing
type HealthChecker struct {
	db *Handle
}

// NewHealthChecker creates a new database health checker
func NewHealthChecker(db *Handle) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name implements the handlers.HealthChecker interface
func (h *HealthChecker) Name() string {
	return "database"
}

// CheckHealth pings the shared connection with timing
func (h *HealthChecker) CheckHealth(ctx context.Context) handlers.HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	healthCheck := handlers.HealthCheck{
		Status:         handlers.StatusHealthy,
		ResponseTimeMs: responseTime,
	}

	if err != nil {
		healthCheck.Status = handlers.StatusUnhealthy
		healthCheck.Error = fmt.Sprintf("database connection failed: %v", err)
	}

	return healthCheck
}
