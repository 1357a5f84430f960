package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/services"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setup(t *testing.T) (*Countdown, *services.CycleService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)}
	store := services.NewCycleService(clock, nil, nil)
	return New(store, clock, nil), store, clock
}

func TestTick_NoActiveCycle(t *testing.T) {
	cd, store, _ := setup(t)
	store.SetSecondsPassed(7)

	res, err := cd.Tick(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Equal(t, "00:00", res.Display.String())
	assert.Equal(t, 7, store.SecondsPassed(), "no mutation without an active cycle")
}

func TestTick_PublishesElapsed(t *testing.T) {
	cd, store, clock := setup(t)
	ctx := context.Background()
	c, err := store.CreateCycle(ctx, "Write", 25)
	require.NoError(t, err)

	res, err := cd.Tick(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "25:00", res.Display.String())

	clock.Advance(65 * time.Second)
	res, err = cd.Tick(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, res.Finished)
	assert.Equal(t, 65, res.SecondsPassed)
	assert.Equal(t, 65, store.SecondsPassed())
	assert.Equal(t, "23:55", res.Display.String())
	assert.Equal(t, "23:55", Current(store).String())
}

func TestTick_NaturalCompletion(t *testing.T) {
	cd, store, clock := setup(t)
	ctx := context.Background()
	c, _ := store.CreateCycle(ctx, "One minute", 1)

	clock.Advance(59 * time.Second)
	res, _ := cd.Tick(ctx, c.ID)
	require.False(t, res.Finished)
	assert.Equal(t, "00:01", res.Display.String())

	clock.Advance(3 * time.Second)
	res, err := cd.Tick(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, "00:00", res.Display.String())
	assert.Equal(t, 60, store.SecondsPassed(), "elapsed clamps to the total")
	assert.Empty(t, store.ActiveCycleID())

	finished, err := store.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleStatusFinished, finished.Status())

	res, _ = cd.Tick(ctx, c.ID)
	assert.True(t, res.Stopped, "no ticking after completion")
}

func TestTick_StaleCycleDropped(t *testing.T) {
	cd, store, clock := setup(t)
	ctx := context.Background()
	old, _ := store.CreateCycle(ctx, "Old", 1)
	clock.Advance(30 * time.Second)
	_, _ = store.InterruptActiveCycle(ctx)
	current, _ := store.CreateCycle(ctx, "New", 10)

	clock.Advance(2 * time.Minute)
	res, err := cd.Tick(ctx, old.ID)
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Equal(t, 0, store.SecondsPassed(), "stale tick must not touch the new cycle")
	assert.Equal(t, current.ID, store.ActiveCycleID())
}

// racingStore replaces the active cycle right after a tick has read it.
type racingStore struct {
	*services.CycleService
	swap func()
}

func (r *racingStore) ActiveCycle() *domain.Cycle {
	c := r.CycleService.ActiveCycle()
	if r.swap != nil {
		r.swap()
		r.swap = nil
	}
	return c
}

func TestTick_CycleReplacedMidTick(t *testing.T) {
	ctx := context.Background()

	t.Run("finish leaves the new cycle running", func(t *testing.T) {
		_, svc, clock := setup(t)
		_, _ = svc.CreateCycle(ctx, "Old", 1)
		clock.Advance(2 * time.Minute)

		var current string
		store := &racingStore{CycleService: svc}
		store.swap = func() {
			c, _ := svc.CreateCycle(ctx, "New", 10)
			current = c.ID
		}

		res, err := New(store, clock, nil).Tick(ctx, "")
		require.NoError(t, err)
		assert.True(t, res.Stopped)
		assert.False(t, res.Finished)
		assert.Equal(t, current, svc.ActiveCycleID())
		assert.Equal(t, 0, svc.SecondsPassed())
		assert.Nil(t, svc.ActiveCycle().FinishedDate)
	})

	t.Run("elapsed is not written to the new cycle", func(t *testing.T) {
		_, svc, clock := setup(t)
		_, _ = svc.CreateCycle(ctx, "Old", 5)
		clock.Advance(40 * time.Second)

		store := &racingStore{CycleService: svc}
		store.swap = func() { _, _ = svc.CreateCycle(ctx, "New", 10) }

		res, err := New(store, clock, nil).Tick(ctx, "")
		require.NoError(t, err)
		assert.True(t, res.Stopped)
		assert.Equal(t, 0, svc.SecondsPassed())
	})
}
