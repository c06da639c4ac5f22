// Package repository stores app settings in PostgreSQL.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository holds the connection pool behind the settings store.
// The app_settings table is created by migrations, not here.
type Repository struct {
	pool *pgxpool.Pool
}

// New opens a pool on databaseURL and returns once the server answers.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := settingsPoolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// settingsPoolConfig sizes the pool for point reads and single-row upserts.
func settingsPoolConfig(databaseURL string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second
	return config, nil
}

// Close closes the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool exposes the pool to test helpers.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
