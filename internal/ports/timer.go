package ports

import (
	"context"
)

// Route names a page of the terminal UI.
type Route string

const (
	// RouteTimer is the page with the form and the countdown.
	RouteTimer Route = "/"

	// RouteHistory lists past cycles.
	RouteHistory Route = "/history"
)

// App is the interactive user interface.
// This is a driving port (called by the application layer).
type App interface {
	// Run starts the interface on the given route and blocks until the
	// user quits or ctx is cancelled.
	Run(ctx context.Context, route Route) error

	// Stop asks a running interface to quit.
	Stop()
}
