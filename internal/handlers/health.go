package handlers

import (
	"net/http"
	"time"

	"github.com/chybatronik/driftiAPI/internal/types"
)

// timestampLayout is ISO-8601 with millisecond precision in UTC
const timestampLayout = "2006-01-02T15:04:05.000Z"

// DatabaseStatusSource reports the shared connection state without blocking
type DatabaseStatusSource interface {
	State() types.ReadyState
	Host() string
}

// HealthHandler serves the liveness report. It always answers 200: the
// database state is reported, never used to gate the response.
type HealthHandler struct {
	environment string
	startedAt   time.Time
	db          DatabaseStatusSource
	now         func() time.Time
}

// NewHealthHandler creates a liveness handler for a process started at startedAt
func NewHealthHandler(environment string, startedAt time.Time, db DatabaseStatusSource) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		startedAt:   startedAt,
		db:          db,
		now:         time.Now,
	}
}

// ServeHTTP implements http.Handler
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Report())
}

// Report builds the health snapshot
func (h *HealthHandler) Report() types.HealthResponse {
	now := h.now()
	state := h.db.State()

	return types.HealthResponse{
		Status:      "ok",
		Timestamp:   now.UTC().Format(timestampLayout),
		Uptime:      now.Sub(h.startedAt).Seconds(),
		Environment: h.environment,
		MongoDB: types.DatabaseStatus{
			Status:     state.Label(),
			ReadyState: int(state),
			Host:       h.db.Host(),
		},
	}
}
