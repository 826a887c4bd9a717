package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"daybook/internal/common"
	"daybook/internal/model"
	"daybook/internal/service"
)

const eventColumns = `id, title, start_date, target_date, category, is_pinned, notes, tag, created_at, updated_at`

// CreateEvent inserts a new event.
func (s *SQLiteStorage) CreateEvent(ctx context.Context, event *model.Event) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, start_date, target_date, category, is_pinned, notes, tag, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.StartDate, event.TargetDate,
		string(event.Category), event.IsPinned, event.Notes, event.Tag,
		event.CreatedAt, event.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("event %s: %w", event.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// GetEventByID fetches a single event.
func (s *SQLiteStorage) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// GetEvents fetches events matching the filter, unordered; display order
// is the viewmodel's concern.
func (s *SQLiteStorage) GetEvents(ctx context.Context, filter service.EventFilter) ([]model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	var conds []string
	var args []any

	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Tag != "" {
		conds = append(conds, "tag = ?")
		args = append(args, filter.Tag)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close rows", nil)
		}
	}()

	var events []model.Event
	for rows.Next() {
		event, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan event: %w", scanErr)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// GetAllEvents fetches every stored event.
func (s *SQLiteStorage) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	return s.GetEvents(ctx, service.EventFilter{})
}

// UpdateEvent persists a mutated event.
func (s *SQLiteStorage) UpdateEvent(ctx context.Context, event *model.Event) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, start_date = ?, target_date = ?, category = ?, is_pinned = ?, notes = ?, tag = ?, updated_at = ?
		WHERE id = ?`,
		event.Title, event.StartDate, event.TargetDate, string(event.Category),
		event.IsPinned, event.Notes, event.Tag, time.Now(), event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("event %s: %w", event.ID, common.ErrNotFound)
	}
	return nil
}

// DeleteEvent removes an event permanently.
func (s *SQLiteStorage) DeleteEvent(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var category string
	if err := row.Scan(&e.ID, &e.Title, &e.StartDate, &e.TargetDate, &category,
		&e.IsPinned, &e.Notes, &e.Tag, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Category = model.Category(category)
	return &e, nil
}
