package ports

import "github.com/xvierd/ignite-timer/internal/domain"

// Notifier tells the user about cycle events outside the terminal.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// CycleFinished is called once when a cycle runs its full duration.
	CycleFinished(cycle *domain.Cycle) error
}
