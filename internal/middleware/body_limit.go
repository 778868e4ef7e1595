package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	errs "github.com/chybatronik/driftiAPI/internal/errors"
)

// BodyLimit rejects declared bodies above maxBytes and caps streamed ones
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := chimw.RequestSize(maxBytes)(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				errs.WritePayloadTooLargeError(w)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
