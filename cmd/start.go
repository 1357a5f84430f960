package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/ignite-timer/internal/countdown"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/ports"
)

var (
	startMinutes int
	startPlain   bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <task>",
	Short: "Start a focus cycle",
	Long: `Start a countdown for a task and open the timer.

The cycle length defaults to timer.default_minutes from the config file.
Use --plain (or pipe the output) to print the countdown as lines instead
of opening the full-screen timer.`,
	Example: `  ignite start "Write the report" -m 25
  ignite start Review --plain`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().IntVarP(&startMinutes, "minutes", "m", 0, "Cycle length in minutes, 1 to 60 (default from config)")
	startCmd.Flags().BoolVar(&startPlain, "plain", false, "Print the countdown as plain lines instead of opening the TUI")
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	task := strings.Join(args, " ")

	minutes := startMinutes
	if !cmd.Flags().Changed("minutes") {
		minutes = app.config.Timer.DefaultMinutes
	}

	cycle, err := app.cycles.CreateCycle(ctx, task, minutes)
	if err != nil {
		return err
	}

	if startPlain || !term.IsTerminal(os.Stdout.Fd()) {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := &plainRunner{
			store:    app.cycles,
			clock:    app.clock,
			interval: time.Duration(app.config.Timer.TickInterval),
			out:      cmd.OutOrStdout(),
			logger:   app.logger,
		}
		return runner.Run(ctx, cycle)
	}

	return runApp(ctx, ports.RouteTimer)
}

// plainRunner prints one MM:SS line per tick until the cycle finishes or
// the context is cancelled, in which case the cycle is interrupted.
type plainRunner struct {
	store    ports.CycleStore
	clock    ports.Clock
	interval time.Duration
	out      io.Writer
	logger   *slog.Logger
}

// Run counts cycle down. It returns once the cycle is finished or
// interrupted.
func (r *plainRunner) Run(ctx context.Context, cycle *domain.Cycle) error {
	if cycle == nil {
		return domain.ErrNoActiveCycle
	}

	fmt.Fprintf(r.out, "▶ %s (%d min)\n", cycle.Task, cycle.MinutesAmount)
	fmt.Fprintln(r.out, countdown.Current(r.store))

	ticker := countdown.New(r.store, r.clock, r.logger)
	var (
		tickErr  error
		finished bool
	)
	handle := countdown.Schedule(ctx, r.interval, func(ctx context.Context) bool {
		res, err := ticker.Tick(ctx, cycle.ID)
		if err != nil {
			tickErr = err
			return false
		}
		if res.Stopped {
			return false
		}
		fmt.Fprintln(r.out, res.Display)
		finished = res.Finished
		return !res.Finished
	})

	select {
	case <-handle.Done():
	case <-ctx.Done():
	}
	handle.Cancel()

	if tickErr != nil {
		return tickErr
	}
	if finished {
		fmt.Fprintf(r.out, "✓ Cycle finished: %s\n", cycle.Task)
		return nil
	}

	interrupted, err := r.store.InterruptActiveCycle(context.Background())
	if err != nil {
		return fmt.Errorf("failed to interrupt cycle: %w", err)
	}
	if interrupted != nil {
		fmt.Fprintf(r.out, "■ Cycle interrupted: %s\n", interrupted.Task)
	}
	return nil
}
