package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncProfileFetch is a no-op.
func (n *NoopRecorder) IncProfileFetch(outcome string) {}

// ObserveProfileFetchDuration is a no-op.
func (n *NoopRecorder) ObserveProfileFetchDuration(duration time.Duration) {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(success bool) {}

// IncLogout is a no-op.
func (n *NoopRecorder) IncLogout() {}

// IncEventRecorded is a no-op.
func (n *NoopRecorder) IncEventRecorded() {}

// IncPlaceSearch is a no-op.
func (n *NoopRecorder) IncPlaceSearch(status string) {}
