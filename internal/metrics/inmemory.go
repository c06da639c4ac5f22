package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ProfileFetches         map[string]uint64
	ProfileFetchCount      uint64
	ProfileFetchTotalNs    int64
	LoginsSucceeded        uint64
	LoginsFailed           uint64
	Logouts                uint64
	EventsRecorded         uint64
	PlaceSearchesSucceeded uint64
	PlaceSearchesFailed    uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	mu             sync.Mutex
	profileFetches map[string]uint64

	profileFetchCount      uint64
	profileFetchTotalNs    int64
	loginsSucceeded        uint64
	loginsFailed           uint64
	logouts                uint64
	eventsRecorded         uint64
	placeSearchesSucceeded uint64
	placeSearchesFailed    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{profileFetches: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	fetches := make(map[string]uint64, len(m.profileFetches))
	for k, v := range m.profileFetches {
		fetches[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		ProfileFetches:         fetches,
		ProfileFetchCount:      atomic.LoadUint64(&m.profileFetchCount),
		ProfileFetchTotalNs:    atomic.LoadInt64(&m.profileFetchTotalNs),
		LoginsSucceeded:        atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:           atomic.LoadUint64(&m.loginsFailed),
		Logouts:                atomic.LoadUint64(&m.logouts),
		EventsRecorded:         atomic.LoadUint64(&m.eventsRecorded),
		PlaceSearchesSucceeded: atomic.LoadUint64(&m.placeSearchesSucceeded),
		PlaceSearchesFailed:    atomic.LoadUint64(&m.placeSearchesFailed),
	}
}

// IncProfileFetch increments the fetch counter for an outcome label.
func (m *InMemoryRecorder) IncProfileFetch(outcome string) {
	m.mu.Lock()
	m.profileFetches[outcome]++
	m.mu.Unlock()
}

// ObserveProfileFetchDuration records fetch duration.
func (m *InMemoryRecorder) ObserveProfileFetchDuration(duration time.Duration) {
	atomic.AddUint64(&m.profileFetchCount, 1)
	atomic.AddInt64(&m.profileFetchTotalNs, duration.Nanoseconds())
}

// IncLogin increments the login counter.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		atomic.AddUint64(&m.loginsSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncLogout increments the logout counter.
func (m *InMemoryRecorder) IncLogout() {
	atomic.AddUint64(&m.logouts, 1)
}

// IncEventRecorded increments the recorded events counter.
func (m *InMemoryRecorder) IncEventRecorded() {
	atomic.AddUint64(&m.eventsRecorded, 1)
}

// IncPlaceSearch increments the place search counter.
func (m *InMemoryRecorder) IncPlaceSearch(status string) {
	if status == "success" {
		atomic.AddUint64(&m.placeSearchesSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.placeSearchesFailed, 1)
}
