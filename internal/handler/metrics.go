package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/ghfreaks/eventlocator/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// profileOutcomes are always exported, even before the first fetch.
var profileOutcomes = []string{
	metrics.OutcomeSuccess,
	metrics.OutcomeInvalidURL,
	metrics.OutcomeInvalidResponse,
	metrics.OutcomeInvalidData,
	metrics.OutcomeUnknown,
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	outcomes := append([]string(nil), profileOutcomes...)
	for outcome := range snap.ProfileFetches {
		if !contains(outcomes, outcome) {
			outcomes = append(outcomes, outcome)
		}
	}
	sort.Strings(outcomes)
	for _, outcome := range outcomes {
		writeMetric(w, "eventlocator_profile_fetches_total{outcome=%q} %d\n", outcome, snap.ProfileFetches[outcome])
	}
	writeMetric(w, "eventlocator_profile_fetch_duration_seconds_count %d\n", snap.ProfileFetchCount)
	writeMetric(w, "eventlocator_profile_fetch_duration_seconds_sum %.6f\n", float64(snap.ProfileFetchTotalNs)/1e9)

	writeMetric(w, "eventlocator_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "eventlocator_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "eventlocator_logouts_total %d\n", snap.Logouts)

	writeMetric(w, "eventlocator_events_recorded_total %d\n", snap.EventsRecorded)

	writeMetric(w, "eventlocator_place_searches_total{status=\"success\"} %d\n", snap.PlaceSearchesSucceeded)
	writeMetric(w, "eventlocator_place_searches_total{status=\"failed\"} %d\n", snap.PlaceSearchesFailed)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
