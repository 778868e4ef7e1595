// Package logging provides standard field definitions for structured logging
package logging

import (
	"log/slog"
	"time"
)

// Standard field names
const (
	FieldRequestID    = "req_id"
	FieldHTTPMethod   = "method"
	FieldHTTPPath     = "path"
	FieldHTTPStatus   = "status"
	FieldLatencyMs    = "latency_ms"
	FieldService      = "service"
	FieldVersion      = "version"
	FieldError        = "error"
	FieldErrorKind    = "error_kind"
	FieldStack        = "stack"
	FieldResponseTime = "response_time_ms"
	FieldAttempt      = "attempt"
	FieldMaxRetries   = "max_retries"
	FieldRetryDelay   = "retry_delay"
	FieldHost         = "host"
	FieldDatabase     = "database"
	FieldReadyState   = "ready_state"
	FieldFault        = "fault"
)

// Attempt renders the "attempt n/max" pair used by the connect loop
func Attempt(n, max int) []any {
	return []any{slog.Int(FieldAttempt, n), slog.Int(FieldMaxRetries, max)}
}

// RetryDelay adds the wait before the next connect attempt
func RetryDelay(d time.Duration) slog.Attr {
	return slog.String(FieldRetryDelay, d.String())
}
