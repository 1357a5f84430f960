package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/ignite-timer/internal/countdown"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// AppTitle is the window title shown while no cycle is running.
const AppTitle = "Ignite Timer"

// tickMsg is sent on every countdown tick. It carries the cycle it was
// scheduled for and the generation of the countdown that scheduled it.
type tickMsg struct {
	cycleID string
	gen     int
	at      time.Time
}

// cycleFinishedMsg is emitted when a tick completes the active cycle.
type cycleFinishedMsg struct {
	cycleID string
}

// countdownView drives the countdown of the active cycle inside the
// Bubbletea loop. Only ticks matching the current generation are acted on,
// so re-arming for a new cycle or tearing the view down silently discards
// any tick still in flight.
type countdownView struct {
	ticker   *countdown.Countdown
	store    ports.CycleReader
	interval time.Duration

	armedFor string
	gen      int
	display  domain.Display
	progress progress.Model
	title    string
}

func newCountdownView(ticker *countdown.Countdown, store ports.CycleReader, interval time.Duration, gradientStart, gradientEnd string) countdownView {
	if interval <= 0 {
		interval = time.Second
	}
	return countdownView{
		ticker:   ticker,
		store:    store,
		interval: interval,
		display:  countdown.Current(store),
		progress: progress.New(progress.WithGradient(gradientStart, gradientEnd), progress.WithoutPercentage()),
		title:    AppTitle,
	}
}

// Sync re-arms the countdown when the active cycle differs from the one it
// is ticking. It returns nil when nothing changed.
func (c *countdownView) Sync() tea.Cmd {
	id := c.store.ActiveCycleID()
	if id == c.armedFor {
		return nil
	}
	c.gen++
	c.armedFor = id
	c.display = countdown.Current(c.store)
	if id == "" {
		return c.setTitle(AppTitle)
	}
	return tea.Batch(c.setTitle(c.display.String()), c.tick())
}

// Stop discards any pending tick.
func (c *countdownView) Stop() {
	c.gen++
	c.armedFor = ""
}

// Armed reports whether a tick is outstanding for an active cycle.
func (c countdownView) Armed() bool {
	return c.armedFor != ""
}

func (c countdownView) tick() tea.Cmd {
	id, gen := c.armedFor, c.gen
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return tickMsg{cycleID: id, gen: gen, at: t}
	})
}

func (c *countdownView) setTitle(title string) tea.Cmd {
	if title == c.title {
		return nil
	}
	c.title = title
	return tea.SetWindowTitle(title)
}

// Update handles a tick. Stale ticks return (nil, nil).
func (c *countdownView) Update(ctx context.Context, msg tickMsg) (tea.Cmd, error) {
	if msg.gen != c.gen || msg.cycleID != c.armedFor || c.armedFor == "" {
		return nil, nil
	}

	res, err := c.ticker.Tick(ctx, msg.cycleID)
	if err != nil {
		c.Stop()
		return c.setTitle(AppTitle), err
	}
	c.display = res.Display

	switch {
	case res.Finished:
		c.Stop()
		finished := func() tea.Msg { return cycleFinishedMsg{cycleID: res.CycleID} }
		return tea.Batch(c.setTitle(AppTitle), finished), nil
	case res.Stopped:
		c.Stop()
		return c.setTitle(AppTitle), nil
	}
	return tea.Batch(c.setTitle(res.Display.String()), c.tick()), nil
}

// Percent returns the elapsed fraction of the active cycle.
func (c countdownView) Percent() float64 {
	active := c.store.ActiveCycle()
	if active == nil || active.TotalSeconds() == 0 {
		return 0
	}
	return float64(c.store.SecondsPassed()) / float64(active.TotalSeconds())
}

// View renders the big digits and, while a cycle runs, the progress bar.
func (c countdownView) View(color string, width int) string {
	out := renderBigTime(c.display, lipgloss.Color(color), width)
	if c.armedFor == "" {
		return out
	}
	bar := c.progress
	if width > 0 {
		bar.Width = min(width-4, 60)
	}
	return out + "\n\n" + bar.ViewAs(c.Percent())
}
