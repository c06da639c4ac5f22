package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghfreaks/eventlocator/internal/handler/dto"
	"github.com/ghfreaks/eventlocator/internal/places"
)

// maxQueryLength bounds the free-text place query.
const maxQueryLength = 256

// PlaceHandler serves place search and look-around previews.
type PlaceHandler struct {
	searcher places.Searcher
	logger   *slog.Logger
}

// NewPlaceHandler creates a new PlaceHandler. A nil searcher makes every
// request answer 503.
func NewPlaceHandler(searcher places.Searcher, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{searcher: searcher, logger: logger}
}

// Search handles GET /api/v1/places?q=.
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		h.writeUnavailable(w)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "QUERY_TOO_LONG", "Search query is too long")
		return
	}

	results, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("place_search_failed", "error", err)
		writeError(w, http.StatusBadGateway, "PLACES_UNAVAILABLE", "Place search failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPlaceListResponse(query, results))
}

// LookAround handles GET /api/v1/places/{id}/look-around.
func (h *PlaceHandler) LookAround(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		h.writeUnavailable(w)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Place ID is required")
		return
	}

	preview, err := h.searcher.LookAround(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, places.ErrPlaceNotFound):
			writeError(w, http.StatusNotFound, "PLACE_NOT_FOUND", "Place not found")
		case errors.Is(err, places.ErrNoPreview):
			writeError(w, http.StatusNotFound, "NO_PREVIEW", "No preview available for this place")
		default:
			h.logger.Error("look_around_failed", "place_id", id, "error", err)
			writeError(w, http.StatusBadGateway, "PLACES_UNAVAILABLE", "Place lookup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.LookAroundResponse{PlaceID: preview.PlaceID, Scene: preview.Scene})
}

func (h *PlaceHandler) writeUnavailable(w http.ResponseWriter) {
	writeError(w, http.StatusServiceUnavailable, "PLACES_NOT_CONFIGURED", "Place search is not configured")
}
