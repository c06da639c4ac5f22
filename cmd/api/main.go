// Package main is the entrypoint for the eventlocator API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ghfreaks/eventlocator/internal/cache"
	"github.com/ghfreaks/eventlocator/internal/config"
	"github.com/ghfreaks/eventlocator/internal/event"
	"github.com/ghfreaks/eventlocator/internal/github"
	"github.com/ghfreaks/eventlocator/internal/handler"
	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
	"github.com/ghfreaks/eventlocator/internal/places"
	"github.com/ghfreaks/eventlocator/internal/profile"
	"github.com/ghfreaks/eventlocator/internal/repository"
	"github.com/ghfreaks/eventlocator/internal/server"
	"github.com/ghfreaks/eventlocator/internal/settings"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	metricsRecorder := metrics.NewInMemory()

	// Settings store
	store, settingsCheck, closeStore, err := openSettingsStore(ctx, cfg, logger)
	if err != nil {
		os.Exit(1)
	}
	settingsSvc := settings.NewService(store, logger)

	// GitHub profile fetch
	githubClient := github.NewClient(
		github.Config{BaseURL: cfg.GitHubAPIURL},
		github.NewHTTPClient(cfg.GitHubTimeout),
		logger,
		metricsRecorder,
	)
	profileSvc := profile.NewService(settingsSvc, githubClient, logger, metricsRecorder)
	eventRecorder := event.NewRecorder(logger, metricsRecorder)

	// Places search is optional
	checks := map[string]handler.HealthChecker{"settings": settingsCheck, "places": nil}
	var searcher places.Searcher
	if cfg.PlacesEnabled() {
		elasticSearcher, err := openPlaces(ctx, cfg, logger, metricsRecorder)
		if err != nil {
			logger.Error("failed to set up places search",
				slog.String("error", sanitizeError(err, cfg.ElasticsearchURL)),
				slog.String("elasticsearch_url", redactURL(cfg.ElasticsearchURL)),
			)
			os.Exit(1)
		}
		searcher = elasticSearcher
		checks["places"] = elasticSearcher
	}

	router := handler.NewRouter(handler.RouterConfig{
		Logger:             logger,
		IsDevelopment:      cfg.IsDevelopment(),
		AllowedOrigins:     cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		Handler:            handler.New(searcher != nil),
		Health:             handler.NewHealthHandler(checks),
		Metrics:            handler.NewMetricsHandler(metricsRecorder),
		GitHub:             handler.NewGitHubHandler(githubClient),
		Session:            handler.NewSessionHandler(profileSvc, logger),
		Settings:           handler.NewSettingsHandler(settingsSvc, logger),
		Events:             handler.NewEventHandler(eventRecorder, logger),
		Places:             handler.NewPlaceHandler(searcher, logger),
	})

	srv := server.New(router, server.Config{
		Addr:            ":" + strconv.Itoa(cfg.AppPort),
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	if closeStore != nil {
		srv.OnShutdown(cfg.SettingsBackend, closeStore)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"settings_backend", cfg.SettingsBackend,
		"github_api_url", cfg.GitHubAPIURL,
		"places_enabled", searcher != nil,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openSettingsStore connects the configured settings backend. The returned
// close function is nil for the memory backend. Connection failures are
// logged before returning.
func openSettingsStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (settings.Store, handler.HealthChecker, server.ShutdownFunc, error) {
	switch cfg.SettingsBackend {
	case config.SettingsBackendRedis:
		cacheClient, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return nil, nil, nil, err
		}
		logger.Info("connected to Redis")
		closeFn := func(ctx context.Context) error { return cacheClient.Close() }
		store := cache.NewSettingsStore(cacheClient, "")
		return store, store, closeFn, nil

	case config.SettingsBackendPostgres:
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			return nil, nil, nil, err
		}
		logger.Info("connected to database")
		closeFn := func(ctx context.Context) error {
			repo.Close()
			return nil
		}
		store := repository.NewSettingsStore(repo)
		return store, store, closeFn, nil

	default:
		store := settings.NewMemoryStore()
		return store, store, nil, nil
	}
}

// openPlaces connects to Elasticsearch and makes sure the places index exists.
func openPlaces(ctx context.Context, cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (*places.ElasticSearcher, error) {
	client, err := places.NewElasticClient(cfg.ElasticsearchURL)
	if err != nil {
		return nil, err
	}

	region := places.Region{
		Center:       model.GeoPoint{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon},
		RadiusMeters: cfg.MapSearchRadius,
	}
	searcher := places.NewElasticSearcher(client, cfg.PlacesIndex, region, logger, recorder)
	if err := searcher.EnsureIndex(ctx); err != nil {
		return nil, err
	}

	logger.Info("connected to Elasticsearch", "index", cfg.PlacesIndex)
	return searcher, nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
