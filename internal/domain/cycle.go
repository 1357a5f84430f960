// Package domain contains the core entities of Ignite: work cycles, their
// lifecycle, and the countdown arithmetic shown to the user. Nothing here
// knows about terminals, configuration files or clocks other than the
// timestamps handed in by callers.
package domain

import (
	"errors"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTask      = errors.New("task cannot be empty")
	ErrInvalidMinutes = errors.New("minutes amount out of range")
	ErrCycleNotFound  = errors.New("cycle not found")
	ErrNoActiveCycle  = errors.New("no active cycle")
	ErrCycleTerminal  = errors.New("cycle already finished or interrupted")
)

const (
	// MinMinutesAmount is the shortest cycle a user can start.
	MinMinutesAmount = 1
	// MaxMinutesAmount is the longest cycle a user can start.
	MaxMinutesAmount = 60
)

// CycleStatus is derived from which terminal date, if any, a cycle carries.
type CycleStatus string

const (
	CycleStatusActive      CycleStatus = "active"
	CycleStatusFinished    CycleStatus = "finished"
	CycleStatusInterrupted CycleStatus = "interrupted"
)

// Cycle is one timed work session.
type Cycle struct {
	ID              string
	Task            string
	MinutesAmount   int
	StartDate       time.Time
	InterruptedDate *time.Time
	FinishedDate    *time.Time

	// Git context of the working directory when the cycle started.
	GitBranch string
	GitCommit string
}

// NewCycle creates an active cycle starting at now. Input is expected to be
// validated already; the range check here only guards the invariant.
func NewCycle(task string, minutesAmount int, now time.Time) (*Cycle, error) {
	if task == "" {
		return nil, ErrEmptyTask
	}
	if minutesAmount < MinMinutesAmount || minutesAmount > MaxMinutesAmount {
		return nil, ErrInvalidMinutes
	}

	return &Cycle{
		ID:            generateID(),
		Task:          task,
		MinutesAmount: minutesAmount,
		StartDate:     now,
	}, nil
}

// Status reports where the cycle is in its lifecycle.
func (c *Cycle) Status() CycleStatus {
	switch {
	case c.FinishedDate != nil:
		return CycleStatusFinished
	case c.InterruptedDate != nil:
		return CycleStatusInterrupted
	default:
		return CycleStatusActive
	}
}

// IsTerminal returns true once the cycle has finished or been interrupted.
func (c *Cycle) IsTerminal() bool {
	return c.Status() != CycleStatusActive
}

// Interrupt stops the cycle before its target duration.
func (c *Cycle) Interrupt(now time.Time) error {
	if c.IsTerminal() {
		return ErrCycleTerminal
	}
	at := clampAfter(now, c.StartDate)
	c.InterruptedDate = &at
	return nil
}

// Finish marks the cycle as having run its full duration.
func (c *Cycle) Finish(now time.Time) error {
	if c.IsTerminal() {
		return ErrCycleTerminal
	}
	at := clampAfter(now, c.StartDate)
	c.FinishedDate = &at
	return nil
}

// TotalSeconds is the target duration of the cycle in seconds.
func (c *Cycle) TotalSeconds() int {
	return c.MinutesAmount * 60
}

// Duration is the target duration of the cycle.
func (c *Cycle) Duration() time.Duration {
	return time.Duration(c.MinutesAmount) * time.Minute
}

// ElapsedSeconds returns whole seconds passed since the start, never negative
// and never more than the cycle's total.
func (c *Cycle) ElapsedSeconds(now time.Time) int {
	elapsed := int(now.Sub(c.StartDate) / time.Second)
	if elapsed < 0 {
		return 0
	}
	if total := c.TotalSeconds(); elapsed > total {
		return total
	}
	return elapsed
}

// EndDate returns the terminal timestamp, or nil while the cycle is active.
func (c *Cycle) EndDate() *time.Time {
	if c.FinishedDate != nil {
		return c.FinishedDate
	}
	return c.InterruptedDate
}

// SetGitContext stores git information for the cycle.
func (c *Cycle) SetGitContext(branch, commit string) {
	c.GitBranch = branch
	c.GitCommit = commit
}

// Clone returns a deep copy so readers cannot mutate store-owned cycles.
func (c *Cycle) Clone() *Cycle {
	if c == nil {
		return nil
	}
	cp := *c
	if c.InterruptedDate != nil {
		t := *c.InterruptedDate
		cp.InterruptedDate = &t
	}
	if c.FinishedDate != nil {
		t := *c.FinishedDate
		cp.FinishedDate = &t
	}
	return &cp
}

func clampAfter(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}

// GetStatusLabel returns a human-readable label for the cycle status.
func GetStatusLabel(s CycleStatus) string {
	switch s {
	case CycleStatusActive:
		return "In progress"
	case CycleStatusFinished:
		return "Finished"
	case CycleStatusInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}
