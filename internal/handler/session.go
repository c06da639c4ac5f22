package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ghfreaks/eventlocator/internal/github"
	"github.com/ghfreaks/eventlocator/internal/handler/dto"
	"github.com/ghfreaks/eventlocator/internal/profile"
)

// SessionHandler handles login, logout and the profile card.
type SessionHandler struct {
	svc    *profile.Service
	logger *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *profile.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, logger: logger}
}

// Get handles GET /api/v1/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Logged:   state.Logged,
		Username: state.Username,
		Hints:    state.Hints,
	})
}

// Login handles POST /api/v1/session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Username == nil {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "username is required")
		return
	}

	card, err := h.svc.Login(r.Context(), *req.Username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(card))
}

// Logout handles DELETE /api/v1/session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/v1/profile.
func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	card, err := h.svc.Card(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(card))
}

// handleServiceError maps profile errors to HTTP responses.
func (h *SessionHandler) handleServiceError(w http.ResponseWriter, err error) {
	var loginErr *profile.LoginError
	var fetchErr *github.FetchError

	switch {
	case errors.Is(err, profile.ErrNotLoggedIn):
		writeError(w, http.StatusUnauthorized, "NOT_LOGGED_IN", "No user is logged in")
	case errors.As(err, &loginErr):
		writeFetchError(w, loginErr.Outcome.Kind)
	case errors.As(err, &fetchErr):
		writeFetchError(w, fetchErr.Kind)
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

func toProfileResponse(card *profile.Card) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Username: card.Username,
		User:     dto.ToGitHubUserResponse(&card.User),
		Age:      card.Age,
	}
}
