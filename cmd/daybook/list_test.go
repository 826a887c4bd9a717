package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/derived"
	"daybook/internal/model"
	"daybook/internal/service"
	"daybook/internal/viewmodel"
)

func TestRenderListView(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	tracker := derived.NewTracker(service.ClockFunc(func() time.Time { return now }))

	pinned, err := model.NewEvent("Team Meeting",
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, time.June, 11, 0, 0, 0, 0, time.Local),
		model.CategoryWork, "", "sprint")
	require.NoError(t, err)
	pinned.IsPinned = true

	plain, err := model.NewEvent("Gym",
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
		model.CategoryPersonal, "", "")
	require.NoError(t, err)

	view := viewmodel.BuildListView([]model.Event{*plain, *pinned}, tracker, nil, "", true)

	var buf strings.Builder
	require.NoError(t, renderListView(&buf, view))
	out := buf.String()

	assert.Contains(t, out, "Team Meeting")
	assert.Contains(t, out, "Gym")
	assert.Contains(t, out, "10 days remaining")
	assert.Contains(t, out, "today")

	// Pinned row renders above unpinned regardless of date order.
	assert.Less(t, strings.Index(out, "Team Meeting"), strings.Index(out, "Gym"))
}

func TestRenderListView_Empty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, renderListView(&buf, viewmodel.ListView{}))
	assert.Contains(t, buf.String(), "No events found")
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local), got)

	_, err = parseDate("06/01/2025")
	assert.Error(t, err)
}
