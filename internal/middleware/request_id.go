// Package middleware provides HTTP middleware components for request tracking
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	errs "github.com/chybatronik/driftiAPI/internal/errors"
	"github.com/chybatronik/driftiAPI/internal/validation"
)

// RequestIDKey is the context key for request ID
type RequestIDKey string

const (
	// RequestIDContextKey is the context key for storing request ID
	RequestIDContextKey RequestIDKey = "req_id"
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
)

// GenerateRequestID generates a random (version 4) UUID
func GenerateRequestID() string {
	return uuid.NewString()
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return reqID
	}
	return ""
}

// SetRequestID adds request ID to context
func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, reqID)
}

// RequestIDMiddleware ensures request ID is present and adds it to context.
// A client-supplied id is echoed only when it passes header validation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = GenerateRequestID()
		} else if err := validation.ValidateRequestID(reqID); err != nil {
			errs.WriteInvalidHeaderError(w, RequestIDHeader)
			return
		}

		w.Header().Set(RequestIDHeader, reqID)

		next.ServeHTTP(w, r.WithContext(SetRequestID(r.Context(), reqID)))
	})
}
