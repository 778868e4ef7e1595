package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chybatronik/driftiAPI/internal/types"
)

// RouteGroup is a feature area mounted under Prefix. Groups currently expose
// only their own health probe; feature endpoints register through Routes.
type RouteGroup struct {
	Prefix string
	Status string
	Routes func(r chi.Router)
}

// AuthRoutes is the authentication route group
func AuthRoutes() RouteGroup {
	return RouteGroup{Prefix: "/api/auth", Status: "Auth routes operational"}
}

// SessionRoutes is the session route group
func SessionRoutes() RouteGroup {
	return RouteGroup{Prefix: "/api/sessions", Status: "Session routes operational"}
}

// Router builds the sub-router mounted at Prefix
func (g RouteGroup) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", g.health)
	if g.Routes != nil {
		g.Routes(r)
	}
	return r
}

func (g RouteGroup) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.RouteStatus{Status: g.Status})
}
