// Package refresh drops derived-state caches when the calendar day rolls
// over and on a coarse periodic interval. The midnight job keeps day
// counts correct across the boundary; the ticker keeps caches coherent
// after external edits and long idle stretches.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"daybook/internal/derived"
	"daybook/internal/service"
)

// DefaultInterval is the periodic invalidation cadence when none is
// configured.
const DefaultInterval = time.Minute

// Coordinator owns the two invalidation triggers. It holds no persisted
// state and is rebuilt on every process start.
type Coordinator struct {
	store     service.Storage
	tracker   *derived.Tracker
	clock     service.Clock
	cron      *cron.Cron
	onRefresh func()
	interval  time.Duration
	mu        sync.Mutex
	running   bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithInterval overrides the periodic invalidation cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithOnRefresh registers a hook invoked after each invalidation pass,
// used by the watch command to re-render.
func WithOnRefresh(fn func()) Option {
	return func(c *Coordinator) {
		c.onRefresh = fn
	}
}

// NewCoordinator creates a stopped coordinator.
func NewCoordinator(store service.Storage, tracker *derived.Tracker, clock service.Clock, opts ...Option) *Coordinator {
	if clock == nil {
		clock = service.SystemClock()
	}
	c := &Coordinator{
		store:    store,
		tracker:  tracker,
		clock:    clock,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start schedules the midnight job and the periodic ticker. The cron
// scheduler re-arms the midnight entry after every run, so there is never
// more than one pending midnight trigger. Start returns immediately; both
// triggers run until Stop or until ctx is canceled.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	c.cron = cron.New(cron.WithLocation(c.clock.Now().Location()))
	if _, err := c.cron.AddFunc("0 0 * * *", func() {
		c.invalidateAll(ctx, "midnight")
	}); err != nil {
		return err
	}
	c.cron.Start()

	go c.tickLoop(ctx)

	c.running = true
	slog.Info("refresh coordinator started", "interval", c.interval)
	return nil
}

// Stop halts both triggers. Safe to call more than once.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.cron.Stop()
	c.running = false
	slog.Info("refresh coordinator stopped")
}

// RefreshNow runs an invalidation pass immediately, outside the two
// scheduled triggers. Used when the process regains the foreground or
// after edits made elsewhere.
func (c *Coordinator) RefreshNow(ctx context.Context) {
	c.invalidateAll(ctx, "manual")
}

func (c *Coordinator) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.invalidateAll(ctx, "tick")
		}
	}
}

// invalidateAll drops every memoized derived value. The store read is a
// coherence check only: a fetch failure is logged and skipped, it never
// blocks in-memory use of whatever the caller already holds.
func (c *Coordinator) invalidateAll(ctx context.Context, trigger string) {
	c.tracker.ResetAll()

	events, err := c.store.GetAllEvents(ctx)
	if err != nil {
		slog.Error("failed to fetch events during refresh", "trigger", trigger, "error", err)
	} else {
		slog.Debug("derived caches invalidated", "trigger", trigger, "events", len(events))
	}

	if c.onRefresh != nil {
		c.onRefresh()
	}
}
