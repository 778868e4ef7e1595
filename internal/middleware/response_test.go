package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriterDefaults(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.False(t, rw.HeaderWritten())
	assert.False(t, rw.HasBody())
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, rw.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, rw.HeaderWritten())
}

func TestResponseWriterCountsBytes(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())

	n, err := rw.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	_, _ = rw.Write([]byte(" world"))

	assert.Equal(t, int64(11), rw.BytesWritten())
	assert.True(t, rw.HasBody())
	assert.True(t, rw.HeaderWritten())
	assert.Equal(t, http.StatusOK, rw.StatusCode())
}

func TestResponseWriterUnwrapAndFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	assert.Same(t, rec, rw.Unwrap())

	rw.Flush()
	assert.True(t, rec.Flushed)
}
