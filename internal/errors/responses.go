// Package errors writes JSON error responses for the HTTP surface
package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/chybatronik/driftiAPI/pkg/errors"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// writeSecureErrorResponse writes an error body that never carries internal details
func writeSecureErrorResponse(w http.ResponseWriter, statusCode int, code, message string) {
	response := ErrorResponse{
		Error: message,
		Code:  code,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// WriteAPIError writes the response for an APIError
func WriteAPIError(w http.ResponseWriter, apiErr *apierrors.APIError) {
	writeSecureErrorResponse(w, apiErr.HTTPStatus, apiErr.Code, apiErr.Message)
}

// WriteStatusError writes the generic body for a bare status code
func WriteStatusError(w http.ResponseWriter, statusCode int) {
	WriteAPIError(w, apierrors.FromStatus(statusCode))
}

// WriteNotFoundError writes a not found error response (404 Not Found)
func WriteNotFoundError(w http.ResponseWriter, r *http.Request) {
	WriteAPIError(w, apierrors.NewNotFoundError("Route "+r.Method+" "+r.URL.Path))
}

// WriteMethodNotAllowedError writes a 405 response listing the allowed methods
func WriteMethodNotAllowedError(w http.ResponseWriter, r *http.Request, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	WriteAPIError(w, apierrors.NewMethodNotAllowedError(r.Method))
}

// WriteRateLimitError writes a rate limit error response (429 Too Many Requests)
func WriteRateLimitError(w http.ResponseWriter, retryAfterSeconds string) {
	w.Header().Set("Retry-After", retryAfterSeconds)
	WriteAPIError(w, apierrors.NewRateLimitError())
}

// WritePayloadTooLargeError writes a body size error response (413)
func WritePayloadTooLargeError(w http.ResponseWriter) {
	WriteAPIError(w, apierrors.NewPayloadTooLargeError())
}

// WriteInvalidHeaderError writes a 400 response for a rejected request header
func WriteInvalidHeaderError(w http.ResponseWriter, header string) {
	WriteAPIError(w, apierrors.New(http.StatusBadRequest, apierrors.ErrCodeInvalidHeader, "Invalid "+header+" header"))
}

// WriteInternalError writes an internal server error response (500 Internal Server Error)
func WriteInternalError(w http.ResponseWriter) {
	WriteAPIError(w, apierrors.NewInternalError())
}

// WriteServiceUnavailableError writes a service unavailable error response (503 Service Unavailable)
func WriteServiceUnavailableError(w http.ResponseWriter) {
	WriteAPIError(w, apierrors.NewServiceUnavailableError())
}
