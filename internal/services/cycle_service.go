package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/form"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// CycleService is the in-memory cycle store. It owns the cycle list, the
// active cycle reference and the elapsed seconds of the active cycle.
type CycleService struct {
	mu            sync.RWMutex
	cycles        []*domain.Cycle
	activeCycleID string
	secondsPassed int

	clock       ports.Clock
	gitDetector ports.GitDetector
	notifier    ports.Notifier
	logger      *slog.Logger
	workingDir  string
}

// NewCycleService creates an empty cycle store. gitDetector and logger may be nil.
func NewCycleService(clock ports.Clock, gitDetector ports.GitDetector, logger *slog.Logger) *CycleService {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CycleService{
		clock:       clock,
		gitDetector: gitDetector,
		logger:      logger,
	}
}

// SetNotifier sets the notifier used when a cycle finishes naturally.
func (s *CycleService) SetNotifier(n ports.Notifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// SetWorkingDir sets the directory inspected for git context.
func (s *CycleService) SetWorkingDir(dir string) {
	s.mu.Lock()
	s.workingDir = dir
	s.mu.Unlock()
}

// CreateCycle validates the input, appends a new cycle and makes it active.
// A cycle that was still active is interrupted first.
func (s *CycleService) CreateCycle(ctx context.Context, task string, minutesAmount int) (*domain.Cycle, error) {
	res := form.ValidateValues(task, minutesAmount)
	if err := res.Err(); err != nil {
		return nil, err
	}

	cycle, err := domain.NewCycle(res.Value.Task, res.Value.MinutesAmount, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}

	// Git detection touches the filesystem; keep it outside the lock.
	s.mu.RLock()
	workingDir := s.workingDir
	s.mu.RUnlock()
	if s.gitDetector != nil {
		info, err := s.gitDetector.Detect(ctx, workingDir)
		switch {
		case err != nil:
			s.logger.Debug("git context unavailable", "dir", workingDir, "error", err)
		case info != nil:
			cycle.SetGitContext(info.Branch, info.Commit)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.findLocked(s.activeCycleID); prev != nil {
		if err := prev.Interrupt(s.clock.Now()); err == nil {
			s.logger.Info("cycle interrupted", "id", prev.ID, "reason", "superseded")
		}
	}

	s.cycles = append(s.cycles, cycle)
	s.activeCycleID = cycle.ID
	s.secondsPassed = 0

	s.logger.Info("cycle created", "id", cycle.ID, "task", cycle.Task, "minutes", cycle.MinutesAmount)
	return cycle.Clone(), nil
}

// InterruptActiveCycle stops the active cycle early. It is a no-op when no
// cycle is active.
func (s *CycleService) InterruptActiveCycle(ctx context.Context) (*domain.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.findLocked(s.activeCycleID)
	if active == nil {
		return nil, nil
	}

	if err := active.Interrupt(s.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to interrupt cycle %s: %w", active.ID, err)
	}
	s.activeCycleID = ""

	s.logger.Info("cycle interrupted", "id", active.ID, "elapsed", s.secondsPassed)
	return active.Clone(), nil
}

// MarkCurrentCycleFinished completes the active cycle, clamps elapsed
// seconds to its total and notifies the user. It is a no-op when no cycle
// is active.
func (s *CycleService) MarkCurrentCycleFinished(ctx context.Context) (*domain.Cycle, error) {
	return s.finish(ctx, "")
}

// MarkCycleFinished completes the cycle with the given id if, and only if,
// it is still the active one. It returns (nil, nil) otherwise.
func (s *CycleService) MarkCycleFinished(ctx context.Context, id string) (*domain.Cycle, error) {
	if id == "" {
		return nil, nil
	}
	return s.finish(ctx, id)
}

// finish completes the active cycle under the lock. A non-empty id must
// match the active cycle.
func (s *CycleService) finish(ctx context.Context, id string) (*domain.Cycle, error) {
	s.mu.Lock()
	active := s.findLocked(s.activeCycleID)
	if active == nil || (id != "" && active.ID != id) {
		s.mu.Unlock()
		return nil, nil
	}
	if err := active.Finish(s.clock.Now()); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to finish cycle %s: %w", active.ID, err)
	}
	s.activeCycleID = ""
	s.secondsPassed = active.TotalSeconds()
	finished := active.Clone()
	notifier := s.notifier
	s.mu.Unlock()

	s.logger.Info("cycle finished", "id", finished.ID, "task", finished.Task)

	if notifier != nil {
		if err := notifier.CycleFinished(finished); err != nil {
			s.logger.Warn("failed to send notification", "error", err)
		}
	}
	return finished, nil
}

// SetSecondsPassed publishes elapsed seconds for the active cycle.
func (s *CycleService) SetSecondsPassed(seconds int) {
	s.mu.Lock()
	s.secondsPassed = seconds
	s.mu.Unlock()
}

// SetCycleSecondsPassed publishes elapsed seconds only while id is the
// active cycle. It reports whether the value was stored.
func (s *CycleService) SetCycleSecondsPassed(id string, seconds int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || id != s.activeCycleID {
		return false
	}
	s.secondsPassed = seconds
	return true
}

// Cycles returns copies of all cycles in creation order.
func (s *CycleService) Cycles() []*domain.Cycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneCyclesLocked()
}

// ActiveCycle returns a copy of the active cycle, or nil.
func (s *CycleService) ActiveCycle() *domain.Cycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(s.activeCycleID).Clone()
}

// ActiveCycleID returns the id of the active cycle, or "".
func (s *CycleService) ActiveCycleID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeCycleID
}

// SecondsPassed returns the last published elapsed seconds.
func (s *CycleService) SecondsPassed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secondsPassed
}

// Snapshot returns a consistent copy of the store.
func (s *CycleService) Snapshot() *domain.StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &domain.StoreState{
		Cycles:        s.cloneCyclesLocked(),
		ActiveCycleID: s.activeCycleID,
		SecondsPassed: s.secondsPassed,
	}
}

// FindByID returns a copy of the cycle with the given id.
func (s *CycleService) FindByID(id string) (*domain.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.findLocked(id)
	if c == nil {
		return nil, domain.ErrCycleNotFound
	}
	return c.Clone(), nil
}

func (s *CycleService) findLocked(id string) *domain.Cycle {
	if id == "" {
		return nil
	}
	for _, c := range s.cycles {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *CycleService) cloneCyclesLocked() []*domain.Cycle {
	out := make([]*domain.Cycle, len(s.cycles))
	for i, c := range s.cycles {
		out[i] = c.Clone()
	}
	return out
}

// Ensure CycleService implements ports.CycleStore.
var _ ports.CycleStore = (*CycleService)(nil)
