package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// App implements ports.App using Bubbletea.
type App struct {
	opts    Options
	program *tea.Program
	cancel  context.CancelFunc
	mu      sync.RWMutex
	wg      sync.WaitGroup

	programOptions []tea.ProgramOption
}

// NewApp creates a new TUI application adapter.
func NewApp(opts Options, programOptions ...tea.ProgramOption) *App {
	if len(programOptions) == 0 {
		programOptions = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &App{opts: opts, programOptions: programOptions}
}

// Run starts the interface on route and blocks until the user quits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context, route ports.Route) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := a.opts
	opts.Route = route
	model := NewModel(runCtx, opts)

	a.mu.Lock()
	a.program = tea.NewProgram(model, a.programOptions...)
	a.cancel = cancel
	program := a.program
	a.mu.Unlock()

	// Handle context cancellation
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-runCtx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	// Signal cancellation and wait for goroutines
	cancel()
	a.wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop gracefully stops the interface.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}
	if a.program != nil {
		a.program.Quit()
	}
}

// Ensure App implements ports.App.
var _ ports.App = (*App)(nil)
