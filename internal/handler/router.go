package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ghfreaks/eventlocator/internal/middleware"
)

// RouterConfig carries the handlers and middleware settings of the API.
type RouterConfig struct {
	Logger             *slog.Logger
	IsDevelopment      bool
	AllowedOrigins     []string
	MaxRequestBodySize int64

	Handler  *Handler
	Health   *HealthHandler
	Metrics  *MetricsHandler
	GitHub   *GitHubHandler
	Session  *SessionHandler
	Settings *SettingsHandler
	Events   *EventHandler
	Places   *PlaceHandler
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger, cfg.IsDevelopment))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	r.Use(middleware.CORS(corsCfg))

	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}

	// Health and info
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	r.Get("/metrics", cfg.Metrics.Metrics)
	r.Get("/", cfg.Handler.Hello)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/github/users/{username}", cfg.GitHub.GetUser)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", cfg.Session.Get)
			r.Post("/", cfg.Session.Login)
			r.Delete("/", cfg.Session.Logout)
		})
		r.Get("/profile", cfg.Session.Profile)

		r.Get("/settings", cfg.Settings.Get)
		r.Patch("/settings", cfg.Settings.Update)
		r.Delete("/settings", cfg.Settings.Reset)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", cfg.Events.List)
			r.Post("/", cfg.Events.Create)
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/", cfg.Places.Search)
			r.Get("/{id}/look-around", cfg.Places.LookAround)
		})
	})

	r.NotFound(cfg.Handler.NotFound)
	r.MethodNotAllowed(cfg.Handler.MethodNotAllowed)

	return r
}
