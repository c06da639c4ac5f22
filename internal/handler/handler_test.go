package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ghfreaks/eventlocator/internal/event"
	"github.com/ghfreaks/eventlocator/internal/github"
	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
	"github.com/ghfreaks/eventlocator/internal/places"
	"github.com/ghfreaks/eventlocator/internal/profile"
	"github.com/ghfreaks/eventlocator/internal/settings"
)

// fakeResolver returns canned outcomes per username and counts calls.
type fakeResolver struct {
	mu       sync.Mutex
	users    map[string]*model.GitHubUser
	failures map[string]github.ErrorKind
	calls    []string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		users:    make(map[string]*model.GitHubUser),
		failures: make(map[string]github.ErrorKind),
	}
}

func (f *fakeResolver) Resolve(ctx context.Context, username string) github.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, username)

	if kind, ok := f.failures[username]; ok {
		return github.OutcomeOf(nil, &github.FetchError{Kind: kind, Username: username})
	}
	if user, ok := f.users[username]; ok {
		return github.OutcomeOf(user, nil)
	}
	return github.OutcomeOf(nil, &github.FetchError{Kind: github.KindInvalidResponse, Username: username, Status: http.StatusNotFound})
}

// testApp is the API wired over in-memory dependencies.
type testApp struct {
	router   http.Handler
	resolver *fakeResolver
	settings *settings.Service
	events   *event.Recorder
	metrics  *metrics.InMemoryRecorder
}

func newTestApp(t *testing.T, searcher places.Searcher) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewInMemory()
	resolver := newFakeResolver()
	resolver.users["octocat"] = &model.GitHubUser{
		AvatarURL: "https://avatars.githubusercontent.com/u/583231?v=4",
		Bio:       "There once was...",
		Name:      "The Octocat",
	}

	settingsSvc := settings.NewService(settings.NewMemoryStore(), logger)
	profileSvc := profile.NewService(settingsSvc, resolver, logger, recorder)
	events := event.NewRecorder(logger, recorder)

	router := NewRouter(RouterConfig{
		Logger:             logger,
		IsDevelopment:      true,
		MaxRequestBodySize: 1 << 20,
		Handler:            New(searcher != nil),
		Health:             NewHealthHandler(map[string]HealthChecker{"settings": settings.NewMemoryStore()}),
		Metrics:            NewMetricsHandler(recorder),
		GitHub:             NewGitHubHandler(resolver),
		Session:            NewSessionHandler(profileSvc, logger),
		Settings:           NewSettingsHandler(settingsSvc, logger),
		Events:             NewEventHandler(events, logger),
		Places:             NewPlaceHandler(searcher, logger),
	})

	return &testApp{
		router:   router,
		resolver: resolver,
		settings: settingsSvc,
		events:   events,
		metrics:  recorder,
	}
}

func (a *testApp) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestHandler_Hello(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	resp := decodeBody[InfoResponse](t, rec)
	if resp.Message != "Hello from eventlocator!" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Version != Version {
		t.Errorf("unexpected version: %s", resp.Version)
	}
	if resp.Features["places"] {
		t.Error("expected places feature to be disabled")
	}
}

func TestHandler_NotFound(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/nonexistent", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	resp := decodeBody[map[string]string](t, rec)
	if resp["code"] != "NOT_FOUND" {
		t.Errorf("unexpected code: %s", resp["code"])
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodPut, "/api/v1/settings", `{"age": 20}`)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
	resp := decodeBody[map[string]string](t, rec)
	if resp["error"] != "method not allowed" {
		t.Errorf("unexpected error message: %s", resp["error"])
	}
}

func TestRouter_MiddlewareHeaders(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/healthz", nil)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "object", body: `{"age": 20}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "malformed", body: `{"age":`, wantErr: true},
		{name: "two objects", body: `{"age": 20}{"age": 30}`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			var v map[string]any
			err := decodeJSON(req, &v)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
