package domain

import (
	"testing"
	"time"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		elapsed int
		want    string
	}{
		{"fresh 25 minute cycle", 25 * 60, 0, "25:00"},
		{"65 seconds in", 25 * 60, 65, "23:55"},
		{"one minute done", 60, 60, "00:00"},
		{"overrun clamps to zero", 60, 75, "00:00"},
		{"single digits padded", 9*60 + 5, 0, "09:05"},
		{"full hour", 60 * 60, 0, "60:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(tt.total, tt.elapsed)
			if got.String() != tt.want {
				t.Errorf("Remaining(%d, %d) = %q, want %q", tt.total, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestDisplay_Digits(t *testing.T) {
	d := Remaining(25*60, 65)
	want := [4]rune{'2', '3', '5', '5'}
	if got := d.Digits(); got != want {
		t.Errorf("Digits() = %q, want %q", string(got[:]), string(want[:]))
	}
	if d.IsZero() {
		t.Error("IsZero() should be false for 23:55")
	}
	if !Remaining(0, 0).IsZero() {
		t.Error("IsZero() should be true for 00:00")
	}
}

func TestStoreState_ActiveCycle(t *testing.T) {
	c1, _ := NewCycle("first", 5, t0)
	c2, _ := NewCycle("second", 25, t0)

	t.Run("no active cycle", func(t *testing.T) {
		s := &StoreState{Cycles: []*Cycle{c1, c2}}
		if s.ActiveCycle() != nil {
			t.Error("ActiveCycle() should be nil without an active id")
		}
		if got := s.Remaining().String(); got != "00:00" {
			t.Errorf("Remaining() = %q, want 00:00", got)
		}
	})

	t.Run("active cycle found", func(t *testing.T) {
		s := &StoreState{Cycles: []*Cycle{c1, c2}, ActiveCycleID: c2.ID, SecondsPassed: 65}
		if s.ActiveCycle() != c2 {
			t.Error("ActiveCycle() should return the referenced cycle")
		}
		if got := s.Remaining().String(); got != "23:55" {
			t.Errorf("Remaining() = %q, want 23:55", got)
		}
	})

	t.Run("nil state", func(t *testing.T) {
		var s *StoreState
		if s.IsCycleActive() {
			t.Error("nil state should have no active cycle")
		}
	})
}

func TestRemainingAt(t *testing.T) {
	c, _ := NewCycle("walk", 25, t0)
	if got := RemainingAt(c, t0.Add(65*time.Second)).String(); got != "23:55" {
		t.Errorf("RemainingAt() = %q, want 23:55", got)
	}
	if got := RemainingAt(nil, t0).String(); got != "00:00" {
		t.Errorf("RemainingAt(nil) = %q, want 00:00", got)
	}
}
