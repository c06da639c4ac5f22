package model

import "time"

// EventDateLayout is the display format of an event date, e.g. "18-10-2026 (19:30)".
const EventDateLayout = "02-01-2006 (15:04)"

// PlaceRef is an opaque reference to a place returned by the places collaborator.
type PlaceRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Event is a date/description pair recorded against a place.
type Event struct {
	ID          string    `json:"id"`   // ULID (time-sortable)
	Date        string    `json:"date"` // EventDateLayout
	When        time.Time `json:"when"`
	Description string    `json:"description"`
	Place       PlaceRef  `json:"place"`
	CreatedAt   time.Time `json:"created_at"`
}
