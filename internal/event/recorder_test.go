package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
)

var marienplatz = model.PlaceRef{ID: "place-1", Name: "Marienplatz"}

func newTestRecorder(now time.Time) (*Recorder, *metrics.InMemoryRecorder) {
	recorder := metrics.NewInMemory()
	r := NewRecorder(slog.New(slog.NewTextHandler(io.Discard, nil)), recorder)
	r.now = func() time.Time { return now }
	return r, recorder
}

func TestRecorder_Record(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 19, 30, 15, 0, time.UTC)
	r, recorder := newTestRecorder(now)

	when := time.Date(2026, 10, 24, 20, 5, 0, 0, time.UTC)
	ev, err := r.Record(context.Background(), Input{
		When:        when,
		Description: "Go meetup",
		Place:       marienplatz,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if ev.Date != "24-10-2026 (20:05)" {
		t.Errorf("Date = %q, want %q", ev.Date, "24-10-2026 (20:05)")
	}
	if !ev.When.Equal(when) {
		t.Errorf("When = %v, want %v", ev.When, when)
	}
	if ev.Description != "Go meetup" || ev.Place != marienplatz {
		t.Errorf("event = %+v", ev)
	}
	if len(ev.ID) != 26 {
		t.Errorf("ID = %q, want 26-char ULID", ev.ID)
	}
	if !ev.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", ev.CreatedAt, now)
	}
	if recorder.Snapshot().EventsRecorded != 1 {
		t.Error("expected event metric")
	}
}

func TestRecorder_Record_DefaultsToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 9, 7, 0, 0, time.UTC)
	r, _ := newTestRecorder(now)

	ev, err := r.Record(context.Background(), Input{Place: marienplatz})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if ev.Date != "18-10-2026 (09:07)" {
		t.Errorf("Date = %q, want 18-10-2026 (09:07)", ev.Date)
	}
	if ev.Description != "" {
		t.Errorf("Description = %q, want empty", ev.Description)
	}
}

func TestRecorder_Record_Validation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"missing place", Input{Description: "x"}, ErrPlaceRequired},
		{"blank place id", Input{Place: model.PlaceRef{ID: "  "}}, ErrPlaceRequired},
		{"yesterday", Input{When: now.Add(-24 * time.Hour), Place: marienplatz}, ErrDateInPast},
		{"previous minute", Input{When: now.Add(-time.Minute), Place: marienplatz}, ErrDateInPast},
		{"same minute", Input{When: now.Truncate(time.Minute), Place: marienplatz}, nil},
		{"future", Input{When: now.Add(time.Hour), Place: marienplatz}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newTestRecorder(now)
			_, err := r.Record(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
			wantLen := 0
			if tt.wantErr == nil {
				wantLen = 1
			}
			if r.Len() != wantLen {
				t.Errorf("Len() = %d, want %d", r.Len(), wantLen)
			}
		})
	}
}

func TestRecorder_List_OrderAndCopy(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRecorder(now)

	for _, desc := range []string{"first", "second", "third"} {
		if _, err := r.Record(context.Background(), Input{Description: desc, Place: marienplatz}); err != nil {
			t.Fatalf("Record(%s) error = %v", desc, err)
		}
	}

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	for i, want := range []string{"first", "second", "third"} {
		if list[i].Description != want {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].Description, want)
		}
	}

	list[0].Description = "mutated"
	if r.List()[0].Description != "first" {
		t.Error("List() must return a copy")
	}
}

func TestRecorder_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecorder(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Record(context.Background(), Input{Place: marienplatz})
		}()
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("Len() = %d, want 50", r.Len())
	}

	seen := make(map[string]bool)
	for _, ev := range r.List() {
		if seen[ev.ID] {
			t.Fatalf("duplicate event id %s", ev.ID)
		}
		seen[ev.ID] = true
	}
}
