package domain

import (
	"fmt"
	"time"
)

// StoreState is a point-in-time copy of the cycle store.
type StoreState struct {
	Cycles        []*Cycle
	ActiveCycleID string
	SecondsPassed int
}

// ActiveCycle returns the cycle referenced by ActiveCycleID, if any.
func (s *StoreState) ActiveCycle() *Cycle {
	if s == nil || s.ActiveCycleID == "" {
		return nil
	}
	for _, c := range s.Cycles {
		if c.ID == s.ActiveCycleID {
			return c
		}
	}
	return nil
}

// IsCycleActive returns true if a cycle is counting down.
func (s *StoreState) IsCycleActive() bool {
	return s.ActiveCycle() != nil
}

// Remaining returns the countdown display for the state.
func (s *StoreState) Remaining() Display {
	active := s.ActiveCycle()
	if active == nil {
		return Remaining(0, 0)
	}
	return Remaining(active.TotalSeconds(), s.SecondsPassed)
}

// Display is a remaining time split into zero-padded minute and second pairs.
type Display struct {
	Minutes string
	Seconds string
}

// Remaining computes what the countdown shows given a cycle's total seconds
// and the seconds already passed. Negative remainders render as zero.
func Remaining(totalSeconds, secondsPassed int) Display {
	current := totalSeconds - secondsPassed
	if current < 0 {
		current = 0
	}
	return Display{
		Minutes: fmt.Sprintf("%02d", current/60),
		Seconds: fmt.Sprintf("%02d", current%60),
	}
}

// RemainingAt is Remaining for a cycle observed at now.
func RemainingAt(c *Cycle, now time.Time) Display {
	if c == nil {
		return Remaining(0, 0)
	}
	return Remaining(c.TotalSeconds(), c.ElapsedSeconds(now))
}

// Digits returns the four digit cells in display order: m, m, s, s.
func (d Display) Digits() [4]rune {
	m := []rune(d.Minutes)
	s := []rune(d.Seconds)
	return [4]rune{m[0], m[1], s[0], s[1]}
}

// String formats the display as MM:SS.
func (d Display) String() string {
	return d.Minutes + ":" + d.Seconds
}

// IsZero returns true when no time remains.
func (d Display) IsZero() bool {
	return d.Minutes == "00" && d.Seconds == "00"
}
