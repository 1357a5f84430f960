package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/xvierd/ignite-timer/internal/adapters/notification"
	"github.com/xvierd/ignite-timer/internal/config"
	"github.com/xvierd/ignite-timer/internal/countdown"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/services"
)

// steppedClock is a wall clock the test moves by hand.
type steppedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// setupStore creates a cycle store with a disabled notifier, the way the
// CLI wires it.
func setupStore(t *testing.T) (*services.CycleService, *steppedClock) {
	t.Helper()

	clock := &steppedClock{now: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}
	store := services.NewCycleService(clock, nil, nil)
	store.SetNotifier(notification.New(&config.NotificationConfig{Enabled: false}))
	return store, clock
}

// TestFullCycleLifecycle runs a cycle from creation to natural completion.
func TestFullCycleLifecycle(t *testing.T) {
	store, clock := setupStore(t)
	ctx := context.Background()
	ticker := countdown.New(store, clock, nil)

	// 1. Start a two-minute cycle
	cycle, err := store.CreateCycle(ctx, "Write report", 2)
	if err != nil {
		t.Fatalf("failed to create cycle: %v", err)
	}
	if got := countdown.Current(store).String(); got != "02:00" {
		t.Errorf("initial display = %s, want 02:00", got)
	}

	// 2. Tick through the first minute
	for i := 0; i < 65; i++ {
		clock.Advance(time.Second)
		res, err := ticker.Tick(ctx, cycle.ID)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if res.Finished || res.Stopped {
			t.Fatalf("tick %d ended the cycle early", i)
		}
	}
	if got := countdown.Current(store).String(); got != "00:55" {
		t.Errorf("display after 65s = %s, want 00:55", got)
	}

	// 3. Run out the clock
	clock.Advance(2 * time.Minute)
	res, err := ticker.Tick(ctx, cycle.ID)
	if err != nil {
		t.Fatalf("final tick: %v", err)
	}
	if !res.Finished {
		t.Fatal("expected the cycle to finish")
	}

	// 4. The store reflects the finished cycle
	state := store.Snapshot()
	if state.IsCycleActive() {
		t.Error("no cycle should remain active")
	}
	if state.SecondsPassed != 120 {
		t.Errorf("seconds passed = %d, want 120", state.SecondsPassed)
	}
	if got := state.Cycles[0].Status(); got != domain.CycleStatusFinished {
		t.Errorf("status = %s, want finished", got)
	}

	// 5. Further ticks do nothing
	res, _ = ticker.Tick(ctx, cycle.ID)
	if !res.Stopped {
		t.Error("tick after finish should report stopped")
	}
}

// TestInterruptAndRestart checks that history keeps every cycle and only
// the newest one runs.
func TestInterruptAndRestart(t *testing.T) {
	store, clock := setupStore(t)
	ctx := context.Background()

	first, _ := store.CreateCycle(ctx, "Write report", 25)
	clock.Advance(3 * time.Minute)
	if _, err := store.InterruptActiveCycle(ctx); err != nil {
		t.Fatalf("interrupt: %v", err)
	}

	clock.Advance(time.Minute)
	second, _ := store.CreateCycle(ctx, "Review PR", 10)

	// A tick scheduled for the interrupted cycle is stale.
	res, err := countdown.New(store, clock, nil).Tick(ctx, first.ID)
	if err != nil || !res.Stopped {
		t.Errorf("stale tick = %+v, %v", res, err)
	}

	history := services.History(store.Cycles(), "")
	if len(history) != 2 {
		t.Fatalf("history has %d cycles, want 2", len(history))
	}
	if history[0].ID != second.ID {
		t.Error("newest cycle should be listed first")
	}
	if history[1].Status() != domain.CycleStatusInterrupted {
		t.Errorf("first cycle status = %s, want interrupted", history[1].Status())
	}
	if got := domain.GetStatusLabel(history[0].Status()); got != "In progress" {
		t.Errorf("label = %q, want In progress", got)
	}
}

// TestScheduledCountdown drives the countdown with the goroutine scheduler
// used by the plain runner.
func TestScheduledCountdown(t *testing.T) {
	store, clock := setupStore(t)
	ctx := context.Background()
	cycle, _ := store.CreateCycle(ctx, "Quick", 1)
	ticker := countdown.New(store, clock, nil)

	var (
		mu       sync.Mutex
		finished bool
	)
	h := countdown.Schedule(ctx, time.Millisecond, func(ctx context.Context) bool {
		clock.Advance(10 * time.Second)
		res, err := ticker.Tick(ctx, cycle.ID)
		if err != nil {
			return false
		}
		mu.Lock()
		finished = res.Finished
		mu.Unlock()
		return !res.Finished
	})

	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		h.Cancel()
		t.Fatal("countdown did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if !finished {
		t.Error("scheduled countdown should finish the cycle")
	}
}
