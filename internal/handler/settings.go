package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ghfreaks/eventlocator/internal/handler/dto"
	"github.com/ghfreaks/eventlocator/internal/settings"
)

// SettingsHandler reads and updates stored preferences.
type SettingsHandler struct {
	svc    *settings.Service
	logger *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *settings.Service, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, logger: logger}
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSettingsResponse(snap))
}

// Reset handles DELETE /api/v1/settings.
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("settings_reset")
	h.Get(w, r)
}

// Update handles PATCH /api/v1/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Age == nil {
		writeError(w, http.StatusBadRequest, "NO_CHANGES", "No updatable fields provided")
		return
	}

	if err := h.svc.SetAge(r.Context(), *req.Age); err != nil {
		if errors.Is(err, settings.ErrAgeOutOfRange) {
			writeError(w, http.StatusUnprocessableEntity, "AGE_OUT_OF_RANGE", "Age must be between 16 and 99")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("settings_updated", "age", *req.Age)
	h.Get(w, r)
}
