// Package dates implements calendar-day arithmetic and yearly recurrence
// projection. All computations use the local calendar; instants are
// anchored to a fixed reference hour so that daylight-saving transitions
// and late-night timestamps cannot shift a result across a day boundary.
package dates

import (
	"fmt"
	"math"
	"time"

	"github.com/teambition/rrule-go"
)

// ReferenceHour is the wall-clock hour events are anchored to before any
// day-count comparison.
const ReferenceHour = 6

// RecurrenceError indicates that calendar arithmetic could not produce a
// next occurrence for an anchor date. It is always recovered locally.
type RecurrenceError struct {
	Anchor time.Time
	Err    error
}

func (e *RecurrenceError) Error() string {
	return fmt.Sprintf("no next occurrence for anchor %s: %v", e.Anchor.Format("2006-01-02"), e.Err)
}

func (e *RecurrenceError) Unwrap() error {
	return e.Err
}

// Normalize returns t pinned to the reference hour on its calendar day.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), ReferenceHour, 0, 0, 0, t.Location())
}

// DaysBetween returns the signed number of calendar days from a to b,
// negative when b precedes a. Both instants are normalized first, so
// time-of-day never influences the count.
func DaysBetween(a, b time.Time) int {
	diff := Normalize(b).Sub(Normalize(a))
	// A calendar day spanning a DST transition is 23 or 25 hours long;
	// rounding absorbs the drift.
	return int(math.Round(diff.Hours() / 24))
}

// NextOccurrence returns the soonest instant on or after now whose month
// and day match anchor's, at the reference hour in now's location. A
// February 29 anchor only matches leap years; that is the recurrence
// library's native resolution and is deliberately kept.
func NextOccurrence(anchor, now time.Time) (time.Time, error) {
	start := Normalize(anchor)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Dtstart:    start,
		Bymonth:    []int{int(anchor.Month())},
		Bymonthday: []int{anchor.Day()},
	})
	if err != nil {
		return time.Time{}, &RecurrenceError{Anchor: anchor, Err: err}
	}

	next := rule.After(Normalize(now), true)
	if next.IsZero() {
		return time.Time{}, &RecurrenceError{Anchor: anchor, Err: fmt.Errorf("rule produced no occurrence after %s", now.Format("2006-01-02"))}
	}
	return next, nil
}

// NextOccurrenceOrAnchor is NextOccurrence with the documented fallback:
// if projection fails the anchor is returned unchanged rather than
// surfacing the error to the caller.
func NextOccurrenceOrAnchor(anchor, now time.Time) time.Time {
	next, err := NextOccurrence(anchor, now)
	if err != nil {
		return anchor
	}
	return next
}
