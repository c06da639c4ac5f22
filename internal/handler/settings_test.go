package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/ghfreaks/eventlocator/internal/handler/dto"
)

func TestSettingsHandler_GetDefaults(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/api/v1/settings", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeBody[dto.SettingsResponse](t, rec)
	if resp.Logged || resp.Age != 16 || resp.Username != "" {
		t.Errorf("unexpected defaults: %+v", resp)
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantAge    int
	}{
		{name: "valid age", body: `{"age": 30}`, wantStatus: http.StatusOK, wantAge: 30},
		{name: "lower bound", body: `{"age": 16}`, wantStatus: http.StatusOK, wantAge: 16},
		{name: "upper bound", body: `{"age": 99}`, wantStatus: http.StatusOK, wantAge: 99},
		{name: "too young", body: `{"age": 15}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "AGE_OUT_OF_RANGE", wantAge: 16},
		{name: "too old", body: `{"age": 100}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "AGE_OUT_OF_RANGE", wantAge: 16},
		{name: "no fields", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: "NO_CHANGES", wantAge: 16},
		{name: "wrong type", body: `{"age": "thirty"}`, wantStatus: http.StatusBadRequest, wantCode: "INVALID_JSON", wantAge: 16},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(t, nil)
			rec := app.do(t, http.MethodPatch, "/api/v1/settings", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if resp := decodeBody[dto.ErrorResponse](t, rec); resp.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
				}
			} else if resp := decodeBody[dto.SettingsResponse](t, rec); resp.Age != tt.wantAge {
				t.Errorf("age = %d, want %d", resp.Age, tt.wantAge)
			}

			rec = app.do(t, http.MethodGet, "/api/v1/settings", nil)
			if resp := decodeBody[dto.SettingsResponse](t, rec); resp.Age != tt.wantAge {
				t.Errorf("stored age = %d, want %d", resp.Age, tt.wantAge)
			}
		})
	}
}

func TestSettingsHandler_Reset(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	ctx := context.Background()
	_ = app.settings.SetAge(ctx, 40)
	_ = app.settings.SetLogged(ctx, true)
	_ = app.settings.SetUsername(ctx, "octocat")

	rec := app.do(t, http.MethodDelete, "/api/v1/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[dto.SettingsResponse](t, rec)
	if resp.Logged || resp.Age != 16 || resp.Username != "" {
		t.Errorf("settings after reset = %+v, want defaults", resp)
	}
}
