package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SettingsStore keeps app settings as rows of the app_settings table.
type SettingsStore struct {
	repo *Repository
}

// NewSettingsStore returns a SettingsStore backed by repo.
func NewSettingsStore(repo *Repository) *SettingsStore {
	return &SettingsStore{repo: repo}
}

// Ping reports whether the database answers and the app_settings table
// has been migrated.
func (s *SettingsStore) Ping(ctx context.Context) error {
	var exists bool
	err := s.repo.pool.QueryRow(ctx, `SELECT to_regclass('app_settings') IS NOT NULL`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check settings table: %w", err)
	}
	if !exists {
		return errors.New("app_settings table missing, run migrations")
	}
	return nil
}

// Get returns the value stored under key.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM app_settings
		WHERE key = $1
	`

	var value string
	err := s.repo.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting: %w", err)
	}

	return value, true, nil
}

// Set upserts value under key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.repo.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM app_settings WHERE key = $1`

	if _, err := s.repo.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
