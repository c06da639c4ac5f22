// Package event records user-created events against places. Events live
// in memory for the lifetime of the process.
package event

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
)

// Validation errors.
var (
	ErrPlaceRequired = errors.New("place is required")
	ErrDateInPast    = errors.New("event date is in the past")
)

// Input describes an event to record. A zero When means now.
type Input struct {
	When        time.Time
	Description string
	Place       model.PlaceRef
}

// Recorder appends events to an in-memory list.
type Recorder struct {
	mu      sync.RWMutex
	events  []model.Event
	now     func() time.Time
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewRecorder creates an empty Recorder.
func NewRecorder(logger *slog.Logger, recorder metrics.Recorder) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Recorder{
		now:     time.Now,
		logger:  logger,
		metrics: recorder,
	}
}

// Record validates input and appends a new event.
func (r *Recorder) Record(ctx context.Context, input Input) (*model.Event, error) {
	if strings.TrimSpace(input.Place.ID) == "" {
		return nil, ErrPlaceRequired
	}

	now := r.now()
	when := input.When
	if when.IsZero() {
		when = now
	}
	// Dates are picked with minute precision, so the current minute is still valid.
	if when.Before(now.Truncate(time.Minute)) {
		return nil, ErrDateInPast
	}

	ev := model.Event{
		ID:          ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Date:        when.Format(model.EventDateLayout),
		When:        when,
		Description: input.Description,
		Place:       input.Place,
		CreatedAt:   now,
	}

	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()

	r.metrics.IncEventRecorded()
	r.logger.InfoContext(ctx, "event_recorded",
		"event_id", ev.ID,
		"place_id", ev.Place.ID,
		"date", ev.Date,
	)

	return &ev, nil
}

// List returns the recorded events in insertion order.
func (r *Recorder) List() []model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Event(nil), r.events...)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}
