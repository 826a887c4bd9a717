package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"daybook/internal/common"
	"daybook/internal/config"
	"daybook/internal/model"
	"daybook/internal/service"
	"daybook/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// saveEvent writes an updated event with retries; a persistent failure is
// reported to the user but in-memory state remains usable.
func saveEvent(ctx context.Context, store service.Storage, event *model.Event) error {
	err := common.WithRetry(ctx, func() error {
		return store.UpdateEvent(ctx, event)
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: 50 * time.Millisecond})
	if err != nil {
		return common.NewUserError("failed to save event", err)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD in the local calendar.
func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// resolveEvent finds an event by ID or by exact title.
func resolveEvent(ctx context.Context, store service.Storage, key string) (*model.Event, error) {
	if event, err := store.GetEventByID(ctx, key); err == nil {
		return event, nil
	}

	events, err := store.GetAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	for i := range events {
		if strings.EqualFold(events[i].Title, key) {
			return &events[i], nil
		}
	}
	return nil, fmt.Errorf("event %q: %w", key, common.ErrNotFound)
}
