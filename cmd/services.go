package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/xvierd/ignite-timer/internal/adapters/git"
	"github.com/xvierd/ignite-timer/internal/adapters/notification"
	"github.com/xvierd/ignite-timer/internal/adapters/tui"
	"github.com/xvierd/ignite-timer/internal/config"
	"github.com/xvierd/ignite-timer/internal/logging"
	"github.com/xvierd/ignite-timer/internal/ports"
	"github.com/xvierd/ignite-timer/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	clock     ports.Clock
	git       ports.GitDetector
	notifier  *notification.Notifier
	cycles    *services.CycleService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	app.logger, app.logCloser, err = newLogger(app.config)
	if err != nil {
		return err
	}

	app.clock = ports.SystemClock
	app.git = git.NewDetector()
	app.notifier = notification.New(&app.config.Notifications)

	app.cycles = services.NewCycleService(app.clock, app.git, app.logger)
	app.cycles.SetNotifier(app.notifier)
	if wd, err := os.Getwd(); err == nil {
		app.cycles.SetWorkingDir(wd)
	}

	app.logger.Debug("services initialized", "version", Version)
	return nil
}

// newLogger returns a file logger when --debug, --log-file or log.file ask
// for one, and a discarding logger otherwise.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	path := logFile
	if path == "" && (debugMode || cfg.Log.File != "") {
		p, err := config.GetLogPath(cfg)
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if path == "" {
		return logging.Discard(), nil, nil
	}

	level := cfg.Log.Level
	if debugMode {
		level = "debug"
	}
	logger, closer, err := logging.OpenFile(path, level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return logger, closer, nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logCloser != nil {
		err := app.logCloser.Close()
		app.logCloser = nil
		return err
	}
	return nil
}

// newApp builds the terminal UI over the shared cycle store.
func newApp() ports.App {
	return tui.NewApp(tui.Options{
		Store:  app.cycles,
		Clock:  app.clock,
		Config: app.config,
		Logger: app.logger,
	})
}

// runApp opens the TUI on route. SIGTERM closes it; ctrl+c is handled by
// the TUI itself while it owns the terminal.
func runApp(ctx context.Context, route ports.Route) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, route); err != nil {
		return err
	}

	// Quitting the TUI ends the session; a cycle still running is recorded
	// as interrupted.
	if c, err := app.cycles.InterruptActiveCycle(context.Background()); err == nil && c != nil {
		app.logger.Info("cycle interrupted on exit", "id", c.ID)
	}
	return nil
}
