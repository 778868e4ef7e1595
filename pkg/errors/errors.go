// Package errors provides the API error definitions for driftiAPI
// Every error body follows the unified format: {"error": "message", "code": "ERROR_CODE"}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// API error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	ErrCodeInvalidHeader      = "INVALID_HEADER"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents an error with HTTP status mapping
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error
func (e *APIError) GetHTTPStatus() int {
	return e.HTTPStatus
}

// New creates an APIError with an explicit status
func New(status int, code, message string) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

// NewNotFoundError creates not found errors (404 Not Found)
func NewNotFoundError(resource string) *APIError {
	message := "Resource not found"
	if resource != "" {
		message = resource + " not found"
	}
	return New(http.StatusNotFound, ErrCodeNotFound, message)
}

// NewMethodNotAllowedError creates method errors (405 Method Not Allowed)
func NewMethodNotAllowedError(method string) *APIError {
	return New(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, fmt.Sprintf("Method %s is not allowed", method))
}

// NewRateLimitError creates rate limit errors (429 Too Many Requests)
func NewRateLimitError() *APIError {
	return New(http.StatusTooManyRequests, ErrCodeRateLimitExceeded, "Too many requests")
}

// NewPayloadTooLargeError creates body size errors (413 Request Entity Too Large)
func NewPayloadTooLargeError() *APIError {
	return New(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Request body too large")
}

// NewInternalError creates internal errors (500 Internal Server Error)
func NewInternalError() *APIError {
	return New(http.StatusInternalServerError, ErrCodeInternal, "Internal server error")
}

// NewServiceUnavailableError creates dependency errors (503 Service Unavailable)
func NewServiceUnavailableError() *APIError {
	return New(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service temporarily unavailable")
}

// FromStatus builds the generic APIError for a bare status code
func FromStatus(status int) *APIError {
	switch status {
	case http.StatusNotFound:
		return NewNotFoundError("")
	case http.StatusMethodNotAllowed:
		return New(status, ErrCodeMethodNotAllowed, "Method not allowed")
	case http.StatusTooManyRequests:
		return NewRateLimitError()
	case http.StatusRequestEntityTooLarge:
		return NewPayloadTooLargeError()
	case http.StatusServiceUnavailable:
		return NewServiceUnavailableError()
	}
	if status >= 500 {
		return New(status, ErrCodeInternal, "Internal server error")
	}
	return New(status, http.StatusText(status), "Request failed")
}

// GetAPIError extracts an APIError from an error chain
func GetAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
