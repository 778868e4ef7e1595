package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	errs "github.com/chybatronik/driftiAPI/internal/errors"
	"github.com/chybatronik/driftiAPI/internal/logging"
)

// Recovery turns a handler panic into a 500 response. A panic inside a
// request is contained here and never reaches the process supervisor.
func Recovery(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := NewResponseWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.WithRequestID(wrapped.Header().Get(RequestIDHeader)).Error("panic recovered in HTTP handler",
					logging.FieldError, fmt.Sprint(rec),
					logging.FieldHTTPMethod, r.Method,
					logging.FieldHTTPPath, r.URL.Path,
					logging.FieldStack, string(debug.Stack()),
				)

				if wrapped.HeaderWritten() {
					return
				}
				errs.WriteInternalError(wrapped)
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
