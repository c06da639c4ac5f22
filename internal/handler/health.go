package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// readyTimeout bounds all dependency pings of one readiness check.
const readyTimeout = 5 * time.Second

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	checks map[string]HealthChecker
	names  []string
}

// NewHealthHandler creates a new HealthHandler. Each named checker is pinged
// by Readyz; a nil checker is reported as "not configured".
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return &HealthHandler{checks: checks, names: names}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is the liveness endpoint.
// It returns 200 if the server is running, without dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness endpoint.
// It pings all dependencies concurrently and returns 200 only if all are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	var mu sync.Mutex
	checks := make(map[string]string, len(h.names))
	healthy := true

	p := pool.New().WithMaxGoroutines(len(h.names) + 1)
	for _, name := range h.names {
		name, checker := name, h.checks[name]
		p.Go(func() {
			result := "ok"
			switch {
			case checker == nil:
				result = "not configured"
			default:
				if err := checker.Ping(ctx); err != nil {
					result = "error: " + err.Error()
				}
			}

			mu.Lock()
			checks[name] = result
			if checker != nil && result != "ok" {
				healthy = false
			}
			mu.Unlock()
		})
	}
	p.Wait()

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{Status: status, Checks: checks})
}
