// Package derived computes time-relative facts about events: next
// occurrence, days remaining, anniversary durations. Results that are
// expensive enough to memoize live in a side-table keyed by event ID,
// owned here rather than on the persisted entity, so cache lifecycle
// stays separate from the storage schema.
package derived

import (
	"fmt"
	"sync"
	"time"

	"daybook/internal/common"
	"daybook/internal/dates"
	"daybook/internal/model"
	"daybook/internal/service"
)

// AnniversaryArithmeticError indicates that shifting an anchor date by
// whole years failed. It is always recovered locally by falling back to
// the total day count.
type AnniversaryArithmeticError struct {
	Anchor time.Time
	Years  int
}

func (e *AnniversaryArithmeticError) Error() string {
	return fmt.Sprintf("cannot add %d years to %s", e.Years, e.Anchor.Format("2006-01-02"))
}

// entry holds the memoized values for one event.
type entry struct {
	nextTarget    time.Time
	daysRemaining int
	hasNextTarget bool
	hasDays       bool
}

// Tracker memoizes derived state per event. Values are computed lazily on
// first read after an invalidation; the refresh coordinator and the edit
// paths call Reset/ResetAll to drop them.
type Tracker struct {
	clock   service.Clock
	entries map[string]*entry
	mu      sync.Mutex
}

// NewTracker creates a tracker reading "now" from the given clock.
func NewTracker(clock service.Clock) *Tracker {
	if clock == nil {
		clock = service.SystemClock()
	}
	return &Tracker{
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

func (t *Tracker) entryFor(id string) *entry {
	en, ok := t.entries[id]
	if !ok {
		en = &entry{}
		t.entries[id] = en
	}
	return en
}

// NextTargetDate returns the target date of a one-shot event, or the next
// occurrence of a recurring event's month/day on or after now. Memoized.
func (t *Tracker) NextTargetDate(e *model.Event) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nextTargetLocked(e)
}

func (t *Tracker) nextTargetLocked(e *model.Event) time.Time {
	en := t.entryFor(e.ID)
	if en.hasNextTarget {
		return en.nextTarget
	}

	if e.IsRecurring() {
		next, err := dates.NextOccurrence(e.StartDate, t.clock.Now())
		if err != nil {
			common.LogDebug("recurrence projection failed, using anchor", common.Fields{
				"event": e.ID,
				"error": err.Error(),
			})
			next = e.StartDate
		}
		en.nextTarget = next
	} else {
		en.nextTarget = e.TargetDate
	}
	en.hasNextTarget = true
	return en.nextTarget
}

// DaysRemaining returns the signed day count from now to the next target
// date: zero means due today, negative means a one-shot event has already
// elapsed. Memoized.
func (t *Tracker) DaysRemaining(e *model.Event) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	en := t.entryFor(e.ID)
	if en.hasDays {
		return en.daysRemaining
	}
	en.daysRemaining = dates.DaysBetween(t.clock.Now(), t.nextTargetLocked(e))
	en.hasDays = true
	return en.daysRemaining
}

// TotalDaysPassed returns the day count from the event's start date to
// now. Cheap, so never cached: it always reflects the current clock.
func (t *Tracker) TotalDaysPassed(e *model.Event) int {
	return dates.DaysBetween(e.StartDate, t.clock.Now())
}

// AnniversaryYears returns the number of whole calendar years elapsed
// since the start date.
func (t *Tracker) AnniversaryYears(e *model.Event) int {
	now := t.clock.Now()
	years := now.Year() - e.StartDate.Year()
	if years <= 0 {
		return 0
	}
	if anniv, err := addYears(e.StartDate, years); err == nil && dates.DaysBetween(anniv, now) < 0 {
		years--
	}
	return years
}

// AnniversaryDays returns the days elapsed since the most recent
// anniversary of the start date, or the total day count in the first
// year. If the year shift fails the total count is the fallback.
func (t *Tracker) AnniversaryDays(e *model.Event) int {
	years := t.AnniversaryYears(e)
	if years == 0 {
		return t.TotalDaysPassed(e)
	}
	anniv, err := addYears(e.StartDate, years)
	if err != nil {
		common.LogDebug("anniversary arithmetic failed, using total days", common.Fields{
			"event": e.ID,
			"error": err.Error(),
		})
		return t.TotalDaysPassed(e)
	}
	return dates.DaysBetween(anniv, t.clock.Now())
}

// Display renders the countdown as the user sees it.
func (t *Tracker) Display(e *model.Event) string {
	n := t.DaysRemaining(e)
	switch {
	case n == 0:
		return "today"
	case n == 1:
		return "1 day remaining"
	case n > 1:
		return fmt.Sprintf("%d days remaining", n)
	case n == -1:
		return "elapsed 1 day"
	default:
		return fmt.Sprintf("elapsed %d days", -n)
	}
}

// Reset drops the memoized values for one event. Idempotent.
func (t *Tracker) Reset(eventID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, eventID)
}

// ResetAll drops every memoized value. Idempotent.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*entry)
}

// addYears shifts an anchor by whole years. Go's calendar arithmetic is
// total, so the error path only guards a zero result; the caller still
// carries the documented fallback.
func addYears(anchor time.Time, years int) (time.Time, error) {
	shifted := anchor.AddDate(years, 0, 0)
	if shifted.IsZero() {
		return time.Time{}, &AnniversaryArithmeticError{Anchor: anchor, Years: years}
	}
	return shifted, nil
}
