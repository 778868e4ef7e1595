// Package middleware provides HTTP middleware for the driftiAPI service.
package middleware

import (
	"net/http"
	"sync/atomic"
)

// ResponseWriter records the status code and body size written by a handler
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    int32
	written       int64
	headerWritten int32
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader keeps the first status, mirroring net/http
func (rw *ResponseWriter) WriteHeader(code int) {
	if !atomic.CompareAndSwapInt32(&rw.headerWritten, 0, 1) {
		return
	}
	atomic.StoreInt32(&rw.statusCode, int32(code))
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(data []byte) (int, error) {
	atomic.StoreInt32(&rw.headerWritten, 1)
	n, err := rw.ResponseWriter.Write(data)
	if n > 0 {
		atomic.AddInt64(&rw.written, int64(n))
	}
	return n, err
}

// Flush forwards to the wrapped writer when it supports streaming
func (rw *ResponseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		atomic.StoreInt32(&rw.headerWritten, 1)
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController
func (rw *ResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *ResponseWriter) StatusCode() int {
	return int(atomic.LoadInt32(&rw.statusCode))
}

func (rw *ResponseWriter) BytesWritten() int64 {
	return atomic.LoadInt64(&rw.written)
}

func (rw *ResponseWriter) HasBody() bool {
	return atomic.LoadInt64(&rw.written) > 0
}

// HeaderWritten reports whether the response has been committed
func (rw *ResponseWriter) HeaderWritten() bool {
	return atomic.LoadInt32(&rw.headerWritten) == 1
}
