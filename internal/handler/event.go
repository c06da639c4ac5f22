package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ghfreaks/eventlocator/internal/event"
	"github.com/ghfreaks/eventlocator/internal/handler/dto"
)

// EventHandler records and lists events.
type EventHandler struct {
	recorder *event.Recorder
	logger   *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(recorder *event.Recorder, logger *slog.Logger) *EventHandler {
	return &EventHandler{recorder: recorder, logger: logger}
}

// List handles GET /api/v1/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToEventListResponse(h.recorder.List()))
}

// Create handles POST /api/v1/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	var when time.Time
	if req.When != nil {
		when = *req.When
	}

	ev, err := h.recorder.Record(r.Context(), event.Input{
		When:        when,
		Description: req.Description,
		Place:       req.Place,
	})
	if err != nil {
		switch {
		case errors.Is(err, event.ErrPlaceRequired):
			writeError(w, http.StatusBadRequest, "PLACE_REQUIRED", "A place must be selected")
		case errors.Is(err, event.ErrDateInPast):
			writeError(w, http.StatusUnprocessableEntity, "DATE_IN_PAST", "Event date must not be in the past")
		default:
			h.logger.Error("internal_error", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToEventResponse(ev))
}
