package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghfreaks/eventlocator/internal/github"
	"github.com/ghfreaks/eventlocator/internal/handler/dto"
)

// ProfileResolver resolves a GitHub username to a tagged fetch outcome.
type ProfileResolver interface {
	Resolve(ctx context.Context, username string) github.Outcome
}

// GitHubHandler exposes the raw profile fetch.
type GitHubHandler struct {
	resolver ProfileResolver
}

// NewGitHubHandler creates a new GitHubHandler.
func NewGitHubHandler(resolver ProfileResolver) *GitHubHandler {
	return &GitHubHandler{resolver: resolver}
}

// GetUser handles GET /api/v1/github/users/{username}.
func (h *GitHubHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	outcome := h.resolver.Resolve(r.Context(), username)
	if !outcome.Succeeded() {
		writeFetchError(w, outcome.Kind)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGitHubUserResponse(outcome.User))
}
