package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midnight pins to reference hour",
			in:   date(2025, time.June, 1),
			want: time.Date(2025, time.June, 1, ReferenceHour, 0, 0, 0, time.Local),
		},
		{
			name: "late night stays on same calendar day",
			in:   time.Date(2025, time.June, 1, 23, 59, 59, 0, time.Local),
			want: time.Date(2025, time.June, 1, ReferenceHour, 0, 0, 0, time.Local),
		},
		{
			name: "early morning stays on same calendar day",
			in:   time.Date(2025, time.June, 1, 0, 30, 0, 0, time.Local),
			want: time.Date(2025, time.June, 1, ReferenceHour, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same day is zero",
			a:    date(2025, time.January, 1),
			b:    date(2025, time.January, 1),
			want: 0,
		},
		{
			name: "same day despite time of day",
			a:    time.Date(2025, time.January, 1, 23, 30, 0, 0, time.Local),
			b:    time.Date(2025, time.January, 1, 0, 15, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "adjacent days",
			a:    date(2025, time.January, 1),
			b:    date(2025, time.January, 2),
			want: 1,
		},
		{
			name: "negative when b precedes a",
			a:    date(2025, time.January, 10),
			b:    date(2025, time.January, 1),
			want: -9,
		},
		{
			name: "across leap day",
			a:    date(2024, time.February, 28),
			b:    date(2024, time.March, 1),
			want: 2,
		},
		{
			name: "across year boundary",
			a:    date(2024, time.December, 30),
			b:    date(2025, time.January, 2),
			want: 3,
		},
		{
			name: "full common year",
			a:    date(2025, time.March, 1),
			b:    date(2026, time.March, 1),
			want: 365,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetween_Antisymmetric(t *testing.T) {
	instants := []time.Time{
		date(2024, time.February, 29),
		date(2025, time.January, 1),
		time.Date(2025, time.June, 15, 23, 45, 0, 0, time.Local),
		time.Date(2025, time.November, 2, 1, 30, 0, 0, time.Local),
	}

	for _, a := range instants {
		for _, b := range instants {
			assert.Equal(t, -DaysBetween(b, a), DaysBetween(a, b),
				"daysBetween(%v,%v) must equal -daysBetween(%v,%v)", a, b, b, a)
		}
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		now    time.Time
		want   time.Time
	}{
		{
			name:   "date already passed this year rolls to next year",
			anchor: date(2024, time.January, 10),
			now:    date(2025, time.June, 1),
			want:   date(2026, time.January, 10),
		},
		{
			name:   "date still ahead this year",
			anchor: date(2024, time.November, 5),
			now:    date(2025, time.June, 1),
			want:   date(2025, time.November, 5),
		},
		{
			name:   "matching day counts as the next occurrence",
			anchor: date(2024, time.June, 1),
			now:    date(2025, time.June, 1),
			want:   date(2025, time.June, 1),
		},
		{
			name:   "anchor in the future projects to the anchor's own date",
			anchor: date(2026, time.March, 15),
			now:    date(2025, time.June, 1),
			want:   date(2026, time.March, 15),
		},
		{
			// The recurrence library only emits Feb 29 in leap years; a
			// Feb 29 anchor therefore skips common years entirely.
			name:   "leap day anchor resolves to next leap year",
			anchor: date(2024, time.February, 29),
			now:    date(2025, time.January, 1),
			want:   date(2028, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.anchor, tt.now)
			require.NoError(t, err)
			assert.Equal(t, Normalize(tt.want), got)
		})
	}
}

func TestNextOccurrence_Properties(t *testing.T) {
	anchor := date(2020, time.August, 17)
	nows := []time.Time{
		date(2025, time.January, 1),
		date(2025, time.August, 16),
		date(2025, time.August, 17),
		date(2025, time.August, 18),
		date(2025, time.December, 31),
	}

	for _, now := range nows {
		got, err := NextOccurrence(anchor, now)
		require.NoError(t, err)

		// Month and day match the anchor.
		assert.Equal(t, anchor.Month(), got.Month(), "now=%v", now)
		assert.Equal(t, anchor.Day(), got.Day(), "now=%v", now)

		// On or after now at day granularity.
		assert.GreaterOrEqual(t, DaysBetween(now, got), 0, "now=%v", now)

		// Minimal: the same month/day one year earlier is before now.
		earlier := got.AddDate(-1, 0, 0)
		assert.Negative(t, DaysBetween(now, earlier), "now=%v", now)
	}
}

func TestNextOccurrenceOrAnchor(t *testing.T) {
	anchor := date(2024, time.May, 20)
	now := date(2025, time.June, 1)

	got := NextOccurrenceOrAnchor(anchor, now)
	assert.Equal(t, Normalize(date(2026, time.May, 20)), got)
}
