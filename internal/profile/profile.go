// Package profile holds the profile state of the single app user: the
// GitHub username they entered, whether they are logged in, and the
// profile card assembled from GitHub plus local preferences.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ghfreaks/eventlocator/internal/github"
	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
	"github.com/ghfreaks/eventlocator/internal/settings"
)

// ErrNotLoggedIn is returned by Card when no user is logged in.
var ErrNotLoggedIn = errors.New("not logged in")

var hints = []string{"Foto", "Name", "Bio"}

// Hints returns what a GitHub profile should include to render a full card.
func Hints() []string {
	return append([]string(nil), hints...)
}

// Fetcher resolves a username to a profile fetch outcome.
type Fetcher interface {
	Resolve(ctx context.Context, username string) github.Outcome
}

// LoginError reports a login whose profile fetch failed. The logged flag
// has been reverted when it is returned.
type LoginError struct {
	Outcome github.Outcome
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %v", e.Outcome.Err)
}

func (e *LoginError) Unwrap() error {
	return e.Outcome.Err
}

// State is the session view of the profile.
type State struct {
	Logged   bool     `json:"logged"`
	Username string   `json:"username"`
	Hints    []string `json:"hints"`
}

// Card is the displayable profile of the logged-in user.
type Card struct {
	Username string           `json:"username"`
	User     model.GitHubUser `json:"user"`
	Age      int              `json:"age"`
}

// Service drives login, logout and profile card assembly.
type Service struct {
	settings *settings.Service
	fetcher  Fetcher
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewService creates a Service.
func NewService(settingsSvc *settings.Service, fetcher Fetcher, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		settings: settingsSvc,
		fetcher:  fetcher,
		logger:   logger,
		metrics:  recorder,
	}
}

// State returns the logged flag, the stored username and the profile hints.
func (s *Service) State(ctx context.Context) (State, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return State{}, err
	}
	return State{Logged: snap.Logged, Username: snap.Username, Hints: Hints()}, nil
}

// Login stores username, fetches the profile and marks the user logged in
// once the fetch succeeds. A failed fetch clears the logged flag and returns
// a *LoginError.
func (s *Service) Login(ctx context.Context, username string) (*Card, error) {
	if err := s.settings.SetUsername(ctx, username); err != nil {
		return nil, err
	}

	outcome := s.fetcher.Resolve(ctx, username)
	if !outcome.Succeeded() {
		s.metrics.IncLogin(false)
		s.logger.Info("login_failed",
			"username", username,
			"kind", outcome.Kind.String(),
		)

		// The request context may already be canceled by the failed fetch.
		loginErr := &LoginError{Outcome: outcome}
		if err := s.settings.SetLogged(context.WithoutCancel(ctx), false); err != nil {
			return nil, errors.Join(loginErr, fmt.Errorf("revert logged flag: %w", err))
		}
		return nil, loginErr
	}

	if err := s.settings.SetLogged(ctx, true); err != nil {
		return nil, err
	}

	age, err := s.settings.Age(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.IncLogin(true)
	s.logger.Info("login_succeeded", "username", username)

	return &Card{Username: username, User: *outcome.User, Age: age}, nil
}

// Logout clears the logged flag. The username is kept for the next login.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.settings.SetLogged(ctx, false); err != nil {
		return err
	}
	s.metrics.IncLogout()
	s.logger.Info("logout")
	return nil
}

// Card fetches the profile of the logged-in user and attaches the age
// preference. A failed fetch returns the fetch error and leaves the
// logged flag untouched.
func (s *Service) Card(ctx context.Context) (*Card, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.Logged {
		return nil, ErrNotLoggedIn
	}

	outcome := s.fetcher.Resolve(ctx, snap.Username)
	if !outcome.Succeeded() {
		return nil, outcome.Err
	}

	return &Card{Username: snap.Username, User: *outcome.User, Age: snap.Age}, nil
}
