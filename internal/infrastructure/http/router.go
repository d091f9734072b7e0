package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler          *handlers.AuthHandler
	UsersHandler         *handlers.UsersHandler
	OrganisationsHandler *handlers.OrganisationsHandler
	HealthHandler        *handlers.HealthHandler
	RequireJWT           func(http.Handler) http.Handler // bearer token for /api/users and /api/organisations
	UniqueEmail          func(http.Handler) http.Handler // email pre-check on register
	Log                  zerolog.Logger
	Secure               func(http.Handler) http.Handler
	CORS                 func(http.Handler) http.Handler
	Metrics              bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.SetHeader("Content-Type", "application/json"))

	r.NotFound(handlers.NotFound)
	r.Get("/", handlers.Root)
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(orPass(cfg.UniqueEmail)).Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/users/{id}", cfg.UsersHandler.Get)
			r.Route("/organisations", func(r chi.Router) {
				r.Get("/", cfg.OrganisationsHandler.List)
				r.Post("/", cfg.OrganisationsHandler.Create)
				r.Get("/{orgId}", cfg.OrganisationsHandler.Get)
				r.Post("/{orgId}/users", cfg.OrganisationsHandler.AddUser)
			})
		})
	})

	return r
}

func orPass(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
