// Package model defines the core data types for the application.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies an event and determines its recurrence behavior.
type Category string

const (
	// CategoryGeneral is the default category for uncategorized events.
	CategoryGeneral Category = "general"
	// CategoryWork represents work deadlines and milestones.
	CategoryWork Category = "work"
	// CategoryPersonal represents personal milestones.
	CategoryPersonal Category = "personal"
	// CategoryBirthday represents yearly recurring birthdays.
	CategoryBirthday Category = "birthday"
)

// Categories lists every valid category.
var Categories = []Category{CategoryGeneral, CategoryWork, CategoryPersonal, CategoryBirthday}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Categories {
		if c == valid {
			return c, nil
		}
	}
	return "", errors.New("invalid category: " + s)
}

// Event represents a single tracked event. Derived values (next occurrence,
// days remaining) are not stored here; see the derived package.
type Event struct {
	StartDate  time.Time
	TargetDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ID         string
	Title      string
	Notes      string
	Tag        string
	Category   Category
	IsPinned   bool
}

// IsRecurring reports whether the event repeats yearly. Recurrence is
// derived from the category and is never set independently.
func (e *Event) IsRecurring() bool {
	return e.Category == CategoryBirthday
}

// EventUpdate carries the editable fields for ApplyUpdate. Nil pointers
// leave the corresponding field unchanged.
type EventUpdate struct {
	Title      *string
	StartDate  *time.Time
	TargetDate *time.Time
	Category   *Category
	Notes      *string
	Tag        *string
}

// NewEvent creates an event with a fresh ID. The target date for recurring
// events is projected by the caller (see derived.NewEvent wiring in the add
// command); for one-shot events targetDate is taken as given.
func NewEvent(title string, startDate, targetDate time.Time, category Category, notes, tag string) (*Event, error) {
	e := &Event{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(title),
		StartDate:  startDate,
		TargetDate: targetDate,
		Category:   category,
		Notes:      notes,
		Tag:        tag,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// ApplyUpdate is the single mutation path for edits. Callers must
// invalidate the event's derived cache after a successful update.
func (e *Event) ApplyUpdate(u EventUpdate) error {
	updated := *e
	if u.Title != nil {
		updated.Title = strings.TrimSpace(*u.Title)
	}
	if u.StartDate != nil {
		updated.StartDate = *u.StartDate
	}
	if u.TargetDate != nil {
		updated.TargetDate = *u.TargetDate
	}
	if u.Category != nil {
		updated.Category = *u.Category
	}
	if u.Notes != nil {
		updated.Notes = *u.Notes
	}
	if u.Tag != nil {
		updated.Tag = *u.Tag
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now()
	*e = updated
	return nil
}

// TogglePin flips the pinned flag. Pin state does not affect derived
// values, but callers invalidate anyway to keep mutation paths uniform.
func (e *Event) TogglePin() {
	e.IsPinned = !e.IsPinned
	e.UpdatedAt = time.Now()
}

// Validate checks the event's invariants.
func (e *Event) Validate() error {
	if e.ID == "" {
		return errors.New("event ID must not be empty")
	}
	if e.Title == "" {
		return errors.New("event title must not be empty")
	}
	if e.StartDate.IsZero() {
		return errors.New("event start date must be set")
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if !e.IsRecurring() && e.TargetDate.IsZero() {
		return errors.New("non-recurring event needs a target date")
	}
	return nil
}
