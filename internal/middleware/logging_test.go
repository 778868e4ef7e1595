package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	logger, buf := bufferedLogger()

	handler := RequestIDMiddleware(RequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/health", nil)
	req.Header.Set(RequestIDHeader, "log-req-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "HTTP request completed", entry["msg"])
	assert.Equal(t, "log-req-1", entry["req_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/auth/health", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Contains(t, entry, "latency_ms")
}
