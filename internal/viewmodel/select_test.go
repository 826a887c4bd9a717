package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/derived"
	"daybook/internal/model"
	"daybook/internal/service"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func event(title string, target time.Time, category model.Category, pinned bool) model.Event {
	return model.Event{
		ID:         title,
		Title:      title,
		StartDate:  date(2024, time.January, 1),
		TargetDate: target,
		Category:   category,
		IsPinned:   pinned,
	}
}

func titles(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestSelect_Filtering(t *testing.T) {
	work := model.CategoryWork
	events := []model.Event{
		event("Team Meeting", date(2025, time.July, 1), model.CategoryWork, false),
		event("Gym", date(2025, time.July, 2), model.CategoryPersonal, false),
		event("Release", date(2025, time.July, 3), model.CategoryWork, false),
	}
	events[2].Notes = "meet the deadline"

	tests := []struct {
		name       string
		category   *model.Category
		searchText string
		want       []string
	}{
		{
			name: "no filter returns everything",
			want: []string{"Gym", "Release", "Team Meeting"},
		},
		{
			name:     "category filter",
			category: &work,
			want:     []string{"Release", "Team Meeting"},
		},
		{
			name:       "search matches title case-insensitively",
			searchText: "Meet",
			want:       []string{"Release", "Team Meeting"},
		},
		{
			name:       "search matches notes too",
			searchText: "deadline",
			want:       []string{"Release"},
		},
		{
			name:       "search misses",
			searchText: "dentist",
			want:       []string{},
		},
		{
			name:       "category and search combine",
			category:   &work,
			searchText: "team",
			want:       []string{"Team Meeting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(events, tt.category, tt.searchText, false)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSelect_PinnedFirstByDate(t *testing.T) {
	events := []model.Event{
		event("Charlie", date(2025, time.July, 3), model.CategoryGeneral, false),
		event("Alpha", date(2025, time.July, 5), model.CategoryGeneral, false),
		event("Bravo", date(2025, time.July, 1), model.CategoryGeneral, true),
		event("Delta", date(2025, time.July, 2), model.CategoryGeneral, true),
	}

	got := Select(events, nil, "", true)
	assert.Equal(t, []string{"Bravo", "Delta", "Charlie", "Alpha"}, titles(got))
}

func TestSelect_TitleOrderUsesCollation(t *testing.T) {
	events := []model.Event{
		event("banana", date(2025, time.July, 1), model.CategoryGeneral, false),
		event("Apple", date(2025, time.July, 2), model.CategoryGeneral, false),
		event("cherry", date(2025, time.July, 3), model.CategoryGeneral, false),
	}

	got := Select(events, nil, "", false)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(got))
}

func TestSelect_StableOnTies(t *testing.T) {
	// Identical target dates: input order must survive the sort.
	target := date(2025, time.July, 1)
	events := []model.Event{
		event("First", target, model.CategoryGeneral, false),
		event("Second", target, model.CategoryGeneral, false),
		event("Third", target, model.CategoryGeneral, false),
	}

	got := Select(events, nil, "", true)
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(got))
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	events := []model.Event{
		event("Zed", date(2025, time.July, 1), model.CategoryGeneral, false),
		event("Abe", date(2025, time.July, 2), model.CategoryGeneral, false),
	}

	_ = Select(events, nil, "", false)
	assert.Equal(t, []string{"Zed", "Abe"}, titles(events))
}

func TestBuildListView(t *testing.T) {
	now := date(2025, time.June, 1)
	tracker := derived.NewTracker(service.ClockFunc(func() time.Time { return now }))

	events := []model.Event{
		event("Conference", date(2025, time.June, 11), model.CategoryWork, false),
		event("Gym", date(2025, time.June, 1), model.CategoryPersonal, false),
	}

	view := BuildListView(events, tracker, nil, "", true)
	require.Len(t, view.Items, 2)

	assert.Equal(t, "Gym", view.Items[0].Event.Title)
	assert.Equal(t, 0, view.Items[0].Days)
	assert.Equal(t, "today", view.Items[0].Countdown)

	assert.Equal(t, "Conference", view.Items[1].Event.Title)
	assert.Equal(t, 10, view.Items[1].Days)
	assert.Equal(t, "10 days remaining", view.Items[1].Countdown)

	assert.False(t, view.IsEmpty())
	assert.False(t, view.HasFilter())

	filtered := BuildListView(events, tracker, nil, "gym", true)
	assert.True(t, filtered.HasFilter())
	require.Len(t, filtered.Items, 1)
}
