// Package middleware provides request tracking middleware tests
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestID(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		_, err := uuid.Parse(id)
		require.NoError(t, err, "GenerateRequestID() returned %q", id)
		if ids[id] {
			t.Errorf("GenerateRequestID() generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestGetRequestID(t *testing.T) {
	ctx := context.Background()

	if reqID := GetRequestID(ctx); reqID != "" {
		t.Errorf("Expected empty request ID, got %s", reqID)
	}

	reqID := "test-req-123"
	ctx = context.WithValue(ctx, RequestIDContextKey, reqID)

	if gotReqID := GetRequestID(ctx); gotReqID != reqID {
		t.Errorf("Expected request ID %s, got %s", reqID, gotReqID)
	}
}

func TestSetRequestID(t *testing.T) {
	ctx := context.Background()
	reqID := "test-req-456"

	ctxWithReqID := SetRequestID(ctx, reqID)
	if gotReqID := GetRequestID(ctxWithReqID); gotReqID != reqID {
		t.Errorf("Expected request ID %s, got %s", reqID, gotReqID)
	}

	if originalReqID := GetRequestID(ctx); originalReqID != "" {
		t.Errorf("Expected empty request ID in original context, got %s", originalReqID)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("client id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "existing-req-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "existing-req-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "existing-req-123", seen)
	})

	t.Run("oversized client id rejected", func(t *testing.T) {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", 200))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"INVALID_HEADER"`)
		assert.Empty(t, seen, "handler must not run")
	})
}
