package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ghfreaks/eventlocator/internal/settings"
	"github.com/ghfreaks/eventlocator/internal/testutil"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("failed to acquire db lock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	if err := testutil.ResetSettingsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("failed to reset schema: %v", err)
	}
	return repo
}

func TestSettingsStore_Integration(t *testing.T) {
	repo := newTestRepository(t)
	store := NewSettingsStore(repo)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "logged"); err != nil || ok {
		t.Fatalf("Get(unset) = ok %v, err %v; want false, nil", ok, err)
	}

	if err := store.Set(ctx, "logged", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "logged", "false"); err != nil {
		t.Fatalf("Set() upsert error = %v", err)
	}

	value, ok, err := store.Get(ctx, "logged")
	if err != nil || !ok || value != "false" {
		t.Fatalf("Get() = %q, %v, %v; want false, true, nil", value, ok, err)
	}

	if err := store.Delete(ctx, "logged"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "logged"); ok {
		t.Error("expected row to be deleted")
	}
}

func TestSettingsStore_BacksSettingsService(t *testing.T) {
	repo := newTestRepository(t)
	svc := settings.NewService(NewSettingsStore(repo), nil)
	ctx := context.Background()

	if err := svc.SetUsername(ctx, "octocat"); err != nil {
		t.Fatalf("SetUsername() error = %v", err)
	}
	if err := svc.SetAge(ctx, 99); err != nil {
		t.Fatalf("SetAge() error = %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Username != "octocat" || snap.Age != 99 || snap.Logged {
		t.Errorf("Snapshot() = %+v", snap)
	}
}

func TestSettingsStore_Ping(t *testing.T) {
	repo := newTestRepository(t)
	store := NewSettingsStore(repo)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	if _, err := repo.Pool().Exec(ctx, `DROP TABLE app_settings`); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if err := store.Ping(ctx); err == nil {
		t.Error("expected Ping() to fail without the app_settings table")
	}
}
