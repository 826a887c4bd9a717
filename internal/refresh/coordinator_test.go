package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/derived"
	"daybook/internal/model"
	"daybook/internal/service"
)

// fakeStore is an in-memory Storage sufficient for coordinator tests.
type fakeStore struct {
	events  []model.Event
	fetches int
	failAll bool
	mu      sync.Mutex
}

func (f *fakeStore) GetAllEvents(_ context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.failAll {
		return nil, errors.New("store unavailable")
	}
	return f.events, nil
}

func (f *fakeStore) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeStore) CreateEvent(_ context.Context, _ *model.Event) error { return nil }

func (f *fakeStore) GetEventByID(_ context.Context, _ string) (*model.Event, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) GetEvents(_ context.Context, _ service.EventFilter) ([]model.Event, error) {
	return f.GetAllEvents(context.Background())
}

func (f *fakeStore) UpdateEvent(_ context.Context, _ *model.Event) error { return nil }

func (f *fakeStore) DeleteEvent(_ context.Context, _ string) error { return nil }

func (f *fakeStore) Migrate(_ context.Context) error { return nil }

func (f *fakeStore) Close() error { return nil }

func fixedClock(at time.Time) service.Clock {
	return service.ClockFunc(func() time.Time { return at })
}

func testEvent(t *testing.T, title string) *model.Event {
	t.Helper()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	event, err := model.NewEvent(title, start, start.AddDate(0, 6, 0), model.CategoryGeneral, "", "")
	require.NoError(t, err)
	return event
}

func TestRefreshNow_InvalidatesCaches(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	clock := fixedClock(now)
	tracker := derived.NewTracker(clock)
	event := testEvent(t, "Launch")
	store := &fakeStore{events: []model.Event{*event}}

	// Prime the memoized value.
	before := tracker.DaysRemaining(event)

	var refreshed int
	coordinator := NewCoordinator(store, tracker, clock,
		WithOnRefresh(func() { refreshed++ }))

	coordinator.RefreshNow(context.Background())

	assert.Equal(t, 1, refreshed, "onRefresh hook fires after invalidation")
	assert.Equal(t, 1, store.fetchCount())

	// The value recomputes on next read and, with the same clock, agrees
	// with the pre-invalidation value.
	assert.Equal(t, before, tracker.DaysRemaining(event))
}

func TestRefreshNow_StoreFailureIsNotFatal(t *testing.T) {
	clock := fixedClock(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local))
	tracker := derived.NewTracker(clock)
	store := &fakeStore{failAll: true}

	var refreshed int
	coordinator := NewCoordinator(store, tracker, clock,
		WithOnRefresh(func() { refreshed++ }))

	coordinator.RefreshNow(context.Background())

	assert.Equal(t, 1, refreshed, "a failed fetch still completes the pass")
}

func TestCoordinator_PeriodicTick(t *testing.T) {
	clock := fixedClock(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local))
	tracker := derived.NewTracker(clock)
	store := &fakeStore{}

	done := make(chan struct{})
	var once sync.Once
	coordinator := NewCoordinator(store, tracker, clock,
		WithInterval(10*time.Millisecond),
		WithOnRefresh(func() { once.Do(func() { close(done) }) }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, coordinator.Start(ctx))
	defer coordinator.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("periodic tick never fired")
	}
}

func TestCoordinator_StartStopLifecycle(t *testing.T) {
	clock := fixedClock(time.Now())
	tracker := derived.NewTracker(clock)
	store := &fakeStore{}
	coordinator := NewCoordinator(store, tracker, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, coordinator.Start(ctx))
	require.NoError(t, coordinator.Start(ctx), "second Start is a no-op")

	coordinator.Stop()
	coordinator.Stop() // safe to repeat
}

func TestWithInterval_IgnoresNonPositive(t *testing.T) {
	coordinator := NewCoordinator(&fakeStore{}, derived.NewTracker(nil), nil, WithInterval(-time.Second))
	assert.Equal(t, DefaultInterval, coordinator.interval)
}
