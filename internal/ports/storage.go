// Package ports defines the interfaces between Ignite's core and the
// adapters around it (terminal UI, notifications, git, clock).
package ports

import (
	"context"

	"github.com/xvierd/ignite-timer/internal/domain"
)

// CycleReader is the read side of the cycle store.
// Every returned cycle is a copy owned by the caller.
type CycleReader interface {
	// Cycles returns all cycles in creation order.
	Cycles() []*domain.Cycle

	// ActiveCycle returns the counting-down cycle, or nil.
	ActiveCycle() *domain.Cycle

	// ActiveCycleID returns the id of the active cycle, or "".
	ActiveCycleID() string

	// SecondsPassed returns the last published elapsed seconds.
	SecondsPassed() int

	// Snapshot returns a consistent copy of the whole store.
	Snapshot() *domain.StoreState
}

// CycleWriter is the write side of the cycle store. It is the only way
// cycles change.
type CycleWriter interface {
	// CreateCycle appends a new active cycle and resets elapsed seconds.
	CreateCycle(ctx context.Context, task string, minutesAmount int) (*domain.Cycle, error)

	// InterruptActiveCycle stops the active cycle. It returns (nil, nil)
	// when nothing is active.
	InterruptActiveCycle(ctx context.Context) (*domain.Cycle, error)

	// MarkCurrentCycleFinished completes the active cycle. It returns
	// (nil, nil) when nothing is active.
	MarkCurrentCycleFinished(ctx context.Context) (*domain.Cycle, error)

	// MarkCycleFinished completes the cycle with the given id when it is
	// still active, and returns (nil, nil) when it is not.
	MarkCycleFinished(ctx context.Context, id string) (*domain.Cycle, error)

	// SetSecondsPassed publishes the elapsed seconds of the active cycle.
	SetSecondsPassed(seconds int)

	// SetCycleSecondsPassed publishes elapsed seconds only while id is the
	// active cycle, reporting whether it did.
	SetCycleSecondsPassed(id string, seconds int) bool
}

// CycleStore combines both capabilities.
type CycleStore interface {
	CycleReader
	CycleWriter
}
