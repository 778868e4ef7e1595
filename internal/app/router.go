package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/chybatronik/driftiAPI/internal/database"
	errs "github.com/chybatronik/driftiAPI/internal/errors"
	"github.com/chybatronik/driftiAPI/internal/handlers"
	"github.com/chybatronik/driftiAPI/internal/middleware"
)

var routeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// routes builds the router. Middleware order is outermost first.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestIDMiddleware)
	if a.cfg.Server.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(a.cfg.Security.AllowedOrigin))
	r.Use(middleware.RequestLogging(a.logger))
	r.Use(a.metrics.Instrument)
	r.Use(chimw.Compress(5))
	r.Use(middleware.BodyLimit(a.cfg.Server.MaxBodyBytes))
	r.Use(chimw.GetHead)

	// set before Mount so route groups inherit them
	r.NotFound(errs.WriteNotFoundError)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errs.WriteMethodNotAllowedError(w, req, allowedMethods(r, req.URL.Path)...)
	})

	health := handlers.NewHealthHandler(a.cfg.Application.Environment, a.startedAt, a.handle)
	readiness := handlers.NewReadinessHandler(ServiceName, a.version, a.startedAt, a.logger)
	readiness.AddChecker(database.NewHealthChecker(a.handle))

	// probes are never rate limited
	r.Method(http.MethodGet, "/health", health)
	r.Method(http.MethodGet, "/health/ready", readiness)

	r.Group(func(r chi.Router) {
		r.Use(a.limiter.Handler)
		for _, group := range []handlers.RouteGroup{handlers.AuthRoutes(), handlers.SessionRoutes()} {
			r.Mount(group.Prefix, group.Router())
		}
	})

	if a.cfg.Application.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	}

	return r
}

// allowedMethods lists the methods routed for path, for the Allow header
func allowedMethods(r chi.Routes, path string) []string {
	var allowed []string
	for _, method := range routeMethods {
		if r.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		} else if method == http.MethodHead && len(allowed) > 0 && allowed[0] == http.MethodGet {
			// answered by GetHead
			allowed = append(allowed, method)
		}
	}
	return allowed
}
