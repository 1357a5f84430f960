// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/ignite-timer/internal/config"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message string) error
	beep   func() error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	if err := n.notify(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if n.cfg.Sound && n.beep != nil {
		if err := n.beep(); err != nil {
			return fmt.Errorf("failed to play sound: %w", err)
		}
	}
	return nil
}

// CycleFinished implements ports.Notifier.
func (n *Notifier) CycleFinished(cycle *domain.Cycle) error {
	title := "⏲ Cycle complete!"
	message := fmt.Sprintf("%q is done: %d minute(s) of focus.", cycle.Task, cycle.MinutesAmount)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
