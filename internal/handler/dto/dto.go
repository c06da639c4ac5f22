// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ghfreaks/eventlocator/internal/model"
)

// ErrorResponse represents an API error. Alert is set for profile fetch
// failures and carries the text the client shows to the user.
type ErrorResponse struct {
	Error string         `json:"error"`
	Code  string         `json:"code"`
	Alert *AlertResponse `json:"alert,omitempty"`
}

// AlertResponse is the user-facing title and message of a failure.
type AlertResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// GitHubUserResponse is a resolved GitHub profile.
type GitHubUserResponse struct {
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Name      string `json:"name"`
}

// ToGitHubUserResponse converts a GitHubUser model.
func ToGitHubUserResponse(u *model.GitHubUser) *GitHubUserResponse {
	return &GitHubUserResponse{AvatarURL: u.AvatarURL, Bio: u.Bio, Name: u.Name}
}

// LoginRequest represents the request body for POST /api/v1/session.
type LoginRequest struct {
	Username *string `json:"username"`
}

// SessionResponse is the profile state of the app user.
type SessionResponse struct {
	Logged   bool     `json:"logged"`
	Username string   `json:"username"`
	Hints    []string `json:"hints"`
}

// ProfileResponse is the profile card of the logged-in user.
type ProfileResponse struct {
	Username string              `json:"username"`
	User     *GitHubUserResponse `json:"user"`
	Age      int                 `json:"age"`
}

// SettingsResponse is the snapshot of stored preferences.
type SettingsResponse struct {
	Logged   bool   `json:"logged"`
	Age      int    `json:"age"`
	Username string `json:"username"`
}

// ToSettingsResponse converts a Settings model.
func ToSettingsResponse(s model.Settings) *SettingsResponse {
	return &SettingsResponse{Logged: s.Logged, Age: s.Age, Username: s.Username}
}

// UpdateSettingsRequest represents the request body for PATCH /api/v1/settings.
type UpdateSettingsRequest struct {
	Age *int `json:"age"`
}

// CreateEventRequest represents the request body for POST /api/v1/events.
// A missing When records the event for now.
type CreateEventRequest struct {
	When        *time.Time     `json:"when,omitempty"`
	Description string         `json:"description"`
	Place       model.PlaceRef `json:"place"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	When        time.Time      `json:"when"`
	Description string         `json:"description"`
	Place       model.PlaceRef `json:"place"`
	CreatedAt   time.Time      `json:"created_at"`
}

// EventListResponse represents the recorded events in insertion order.
type EventListResponse struct {
	Data  []EventResponse `json:"data"`
	Count int             `json:"count"`
}

// ToEventResponse converts an Event model.
func ToEventResponse(e *model.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		Date:        e.Date,
		When:        e.When,
		Description: e.Description,
		Place:       e.Place,
		CreatedAt:   e.CreatedAt,
	}
}

// ToEventListResponse converts a slice of Event models.
func ToEventListResponse(events []model.Event) *EventListResponse {
	data := make([]EventResponse, len(events))
	for i := range events {
		data[i] = *ToEventResponse(&events[i])
	}
	return &EventListResponse{Data: data, Count: len(data)}
}

// PlaceResponse represents a search result.
type PlaceResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address,omitempty"`
	Location      model.GeoPoint `json:"location"`
	HasLookAround bool           `json:"has_look_around"`
}

// PlaceListResponse represents place search results, nearest first.
type PlaceListResponse struct {
	Query string          `json:"query"`
	Data  []PlaceResponse `json:"data"`
}

// ToPlaceListResponse converts search results.
func ToPlaceListResponse(query string, places []model.Place) *PlaceListResponse {
	data := make([]PlaceResponse, len(places))
	for i, p := range places {
		data[i] = PlaceResponse{
			ID:            p.ID,
			Name:          p.Name,
			Address:       p.Address,
			Location:      p.Location,
			HasLookAround: p.PreviewHandle != "",
		}
	}
	return &PlaceListResponse{Query: query, Data: data}
}

// LookAroundResponse is the preview handle of a place.
type LookAroundResponse struct {
	PlaceID string `json:"place_id"`
	Scene   string `json:"scene"`
}
