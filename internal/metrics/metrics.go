// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Profile fetch outcome labels.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidURL      = "invalid_url"
	OutcomeInvalidResponse = "invalid_response"
	OutcomeInvalidData     = "invalid_data"
	OutcomeUnknown         = "unknown"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Profile fetch metrics
	IncProfileFetch(outcome string)
	ObserveProfileFetchDuration(duration time.Duration)

	// Session metrics
	IncLogin(success bool)
	IncLogout()

	// Event and place metrics
	IncEventRecorded()
	IncPlaceSearch(status string) // status: "success" or "failed"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
