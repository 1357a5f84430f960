// Package countdown advances the active cycle once per tick: it recomputes
// elapsed seconds from the wall clock, publishes them to the cycle store
// and completes the cycle when its duration has run out.
package countdown

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// Result describes what a single tick did.
type Result struct {
	CycleID       string
	SecondsPassed int
	Display       domain.Display

	// Finished is set on the tick that completed the cycle.
	Finished bool

	// Stopped means there was nothing to tick: no active cycle, or the
	// tick was scheduled for a cycle that is no longer active.
	Stopped bool
}

// Countdown ticks the active cycle of a store.
type Countdown struct {
	store  ports.CycleStore
	clock  ports.Clock
	logger *slog.Logger
}

// New creates a countdown over store. clock and logger may be nil.
func New(store ports.CycleStore, clock ports.Clock, logger *slog.Logger) *Countdown {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Countdown{store: store, clock: clock, logger: logger}
}

// Tick advances the cycle identified by cycleID. An empty cycleID ticks
// whatever cycle is active.
func (c *Countdown) Tick(ctx context.Context, cycleID string) (Result, error) {
	active := c.store.ActiveCycle()
	if active == nil {
		return Result{Stopped: true, Display: domain.Remaining(0, 0)}, nil
	}
	if cycleID != "" && active.ID != cycleID {
		c.logger.Debug("dropping stale tick", "scheduled_for", cycleID, "active", active.ID)
		return Result{Stopped: true, CycleID: cycleID, Display: domain.Remaining(0, 0)}, nil
	}

	total := active.TotalSeconds()
	elapsed := int(c.clock.Now().Sub(active.StartDate) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed >= total {
		finished, err := c.store.MarkCycleFinished(ctx, active.ID)
		if err != nil {
			return Result{}, fmt.Errorf("failed to finish cycle: %w", err)
		}
		if finished == nil {
			return c.stale(active.ID), nil
		}
		return Result{
			CycleID:       active.ID,
			SecondsPassed: total,
			Display:       domain.Remaining(total, total),
			Finished:      true,
		}, nil
	}

	if !c.store.SetCycleSecondsPassed(active.ID, elapsed) {
		return c.stale(active.ID), nil
	}
	return Result{
		CycleID:       active.ID,
		SecondsPassed: elapsed,
		Display:       domain.Remaining(total, elapsed),
	}, nil
}

// stale reports a cycle that stopped being active between the read and
// the write of a tick.
func (c *Countdown) stale(cycleID string) Result {
	c.logger.Debug("cycle changed during tick", "cycle", cycleID)
	return Result{Stopped: true, CycleID: cycleID, Display: domain.Remaining(0, 0)}
}

// Current returns the display for the store's present state without
// ticking.
func Current(store ports.CycleReader) domain.Display {
	return store.Snapshot().Remaining()
}
