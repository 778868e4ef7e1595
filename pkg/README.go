// Package pkg provides public libraries that can be imported by other projects.
//
// This package serves as the public API surface of driftiAPI and contains:
//   - errors: API error codes and the status-mapped APIError type
//
// Example usage:
//
//   import "github.com/chybatronik/driftiAPI/pkg/errors"
//
//   apiErr := errors.NewRateLimitError()
//   http.Error(w, apiErr.Error(), apiErr.GetHTTPStatus())
package pkg
