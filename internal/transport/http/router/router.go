package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type PasswordHandler interface {
	Change(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Password PasswordHandler

	RequestIDMW func(http.Handler) http.Handler
	AccessLogMW func(http.Handler) http.Handler
	MetricsMW   func(http.Handler) http.Handler
	BodyLimitMW func(http.Handler) http.Handler

	// Metrics serves the Prometheus scrape endpoint. Optional.
	Metrics http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Password == nil {
		return nil, fmt.Errorf("nil Password handler")
	}
	if deps.RequestIDMW == nil {
		return nil, fmt.Errorf("nil RequestID middleware")
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(deps.RequestIDMW)
	if deps.AccessLogMW != nil {
		r.Use(deps.AccessLogMW)
	}
	if deps.MetricsMW != nil {
		r.Use(deps.MetricsMW)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/auth/v1", func(r chi.Router) {
		if deps.BodyLimitMW != nil {
			r.Use(deps.BodyLimitMW)
		}
		r.Post("/password/change", deps.Password.Change)
	})

	return r, nil
}
