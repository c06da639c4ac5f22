package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ghfreaks/eventlocator/internal/model"
)

// Setting keys.
const (
	KeyLogged   = "logged"
	KeyAge      = "age"
	KeyUsername = "githubusername"
)

// Defaults and bounds.
const (
	DefaultAge = 16
	MinAge     = 16
	MaxAge     = 99
)

// ErrAgeOutOfRange is returned by SetAge for ages outside MinAge..MaxAge.
var ErrAgeOutOfRange = errors.New("age out of range")

// Service exposes typed accessors over a Store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a Service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Logged reports whether a user is logged in. Defaults to false.
func (s *Service) Logged(ctx context.Context) (bool, error) {
	raw, ok, err := s.store.Get(ctx, KeyLogged)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", KeyLogged, err)
	}
	if !ok {
		return false, nil
	}

	logged, err := strconv.ParseBool(raw)
	if err != nil {
		s.logger.Warn("settings_value_invalid", "key", KeyLogged, "value", raw)
		return false, nil
	}
	return logged, nil
}

// SetLogged stores the logged flag.
func (s *Service) SetLogged(ctx context.Context, logged bool) error {
	if err := s.store.Set(ctx, KeyLogged, strconv.FormatBool(logged)); err != nil {
		return fmt.Errorf("set %s: %w", KeyLogged, err)
	}
	return nil
}

// Age returns the age preference. Defaults to DefaultAge.
func (s *Service) Age(ctx context.Context) (int, error) {
	raw, ok, err := s.store.Get(ctx, KeyAge)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", KeyAge, err)
	}
	if !ok {
		return DefaultAge, nil
	}

	age, err := strconv.Atoi(raw)
	if err != nil || age < MinAge || age > MaxAge {
		s.logger.Warn("settings_value_invalid", "key", KeyAge, "value", raw)
		return DefaultAge, nil
	}
	return age, nil
}

// SetAge stores the age preference.
func (s *Service) SetAge(ctx context.Context, age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("%w: %d not in %d..%d", ErrAgeOutOfRange, age, MinAge, MaxAge)
	}
	if err := s.store.Set(ctx, KeyAge, strconv.Itoa(age)); err != nil {
		return fmt.Errorf("set %s: %w", KeyAge, err)
	}
	return nil
}

// Username returns the last-entered GitHub username, "" if none.
func (s *Service) Username(ctx context.Context) (string, error) {
	raw, _, err := s.store.Get(ctx, KeyUsername)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", KeyUsername, err)
	}
	return raw, nil
}

// SetUsername stores username verbatim.
func (s *Service) SetUsername(ctx context.Context, username string) error {
	if err := s.store.Set(ctx, KeyUsername, username); err != nil {
		return fmt.Errorf("set %s: %w", KeyUsername, err)
	}
	return nil
}

// Reset removes every stored setting so reads fall back to their defaults.
func (s *Service) Reset(ctx context.Context) error {
	for _, key := range []string{KeyLogged, KeyAge, KeyUsername} {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// Snapshot reads all settings.
func (s *Service) Snapshot(ctx context.Context) (model.Settings, error) {
	var snap model.Settings
	var err error

	if snap.Logged, err = s.Logged(ctx); err != nil {
		return model.Settings{}, err
	}
	if snap.Age, err = s.Age(ctx); err != nil {
		return model.Settings{}, err
	}
	if snap.Username, err = s.Username(ctx); err != nil {
		return model.Settings{}, err
	}

	return snap, nil
}
