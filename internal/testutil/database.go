// Package testutil provides shared helpers for package tests: an
// in-memory event database and a fixed test clock.
package testutil

import (
	"context"
	"testing"
	"time"

	"daybook/internal/model"
	"daybook/internal/service"
	"daybook/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database with migrations
// applied and cleanup registered.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return &TestDB{Storage: store, t: t}
}

// MustCreateEvent inserts an event or fails the test.
func (db *TestDB) MustCreateEvent(ctx context.Context, event *model.Event) {
	db.t.Helper()
	if err := db.Storage.CreateEvent(ctx, event); err != nil {
		db.t.Fatalf("failed to create event %q: %v", event.Title, err)
	}
}

// Date is shorthand for a local-calendar instant at midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
