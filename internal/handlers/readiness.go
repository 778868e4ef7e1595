package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/chybatronik/driftiAPI/internal/logging"
)

// Check statuses
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ReadinessResponse represents the readiness probe response format
type ReadinessResponse struct {
	Status        string                 `json:"status"`         // healthy|unhealthy
	Timestamp     int64                  `json:"timestamp"`      // Unix timestamp
	Service       string                 `json:"service"`
	Version       string                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Checks        map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents individual health check result with timing
type HealthCheck struct {
	Status         string `json:"status"`           // healthy|unhealthy
	ResponseTimeMs int64  `json:"response_time_ms"` // Response time in ms
	Error          string `json:"error,omitempty"`  // Only present if unhealthy
}

// HealthChecker interface for health check components
type HealthChecker interface {
	CheckHealth(ctx context.Context) HealthCheck
	Name() string
}

// ReadinessHandler aggregates dependency checks: 200 when all pass, 503 otherwise
type ReadinessHandler struct {
	checkers  []HealthChecker
	startTime time.Time
	version   string
	service   string
	mu        sync.RWMutex
	logger    *logging.Logger
}

// NewReadinessHandler creates a new readiness handler
func NewReadinessHandler(service, version string, startTime time.Time, logger *logging.Logger) *ReadinessHandler {
	return &ReadinessHandler{
		checkers:  make([]HealthChecker, 0),
		startTime: startTime,
		version:   version,
		service:   service,
		logger:    logger,
	}
}

// AddChecker adds a health checker to the handler
func (h *ReadinessHandler) AddChecker(checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// ServeHTTP runs every checker and reports the aggregate
func (h *ReadinessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	response := ReadinessResponse{
		Timestamp:     start.Unix(),
		Service:       h.service,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        make(map[string]HealthCheck),
	}

	h.mu.RLock()
	checkers := make([]HealthChecker, len(h.checkers))
	copy(checkers, h.checkers)
	h.mu.RUnlock()

	allHealthy := true
	for _, checker := range checkers {
		healthCheck := checker.CheckHealth(r.Context())
		response.Checks[checker.Name()] = healthCheck

		if healthCheck.Status != StatusHealthy {
			allHealthy = false
			h.logger.HealthCheck("check failed",
				"check_name", checker.Name(),
				"check_status", healthCheck.Status,
				logging.FieldError, healthCheck.Error,
			)
		}
	}

	status := http.StatusOK
	response.Status = StatusHealthy
	if !allHealthy {
		status = http.StatusServiceUnavailable
		response.Status = StatusUnhealthy
	}

	h.logger.Debug("healthcheck: readiness evaluated",
		"status", response.Status,
		logging.FieldResponseTime, time.Since(start).Milliseconds(),
	)

	if err := writeJSON(w, status, response); err != nil {
		h.logger.Error("failed to encode readiness response", logging.FieldError, err)
	}
}
