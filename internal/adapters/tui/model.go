package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/ignite-timer/internal/config"
	"github.com/xvierd/ignite-timer/internal/countdown"
	"github.com/xvierd/ignite-timer/internal/ports"
)

// Options configure a Model.
type Options struct {
	Store  ports.CycleStore
	Clock  ports.Clock
	Config *config.Config
	Route  ports.Route
	Logger *slog.Logger
}

// Model is the application shell: it routes between the timer and history
// views and owns the countdown of the active cycle.
type Model struct {
	ctx    context.Context
	store  ports.CycleStore
	clock  ports.Clock
	logger *slog.Logger

	route  ports.Route
	keys   KeyMap
	help   help.Model
	theme  config.ThemeConfig
	styles styles

	countdown countdownView
	timer     timerPage
	history   historyPage
	initCmd   tea.Cmd

	width  int
	height int

	notice  string
	lastErr error
}

// NewModel creates the shell model. A cycle already active in the store is
// picked up and its countdown armed.
func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	route := opts.Route
	if route != ports.RouteHistory {
		route = ports.RouteTimer
	}

	theme := resolveTheme(&cfg.Theme)
	st := newStyles(theme)
	ticker := countdown.New(opts.Store, clock, logger)

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		clock:     clock,
		logger:    logger,
		route:     route,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     theme,
		styles:    st,
		countdown: newCountdownView(ticker, opts.Store, time.Duration(cfg.Timer.TickInterval), theme.GradientStart, theme.GradientEnd),
		timer:     newTimerPage(cfg.Timer.DefaultMinutes),
		history:   newHistoryPage(st),
	}
	m.timer.SetSuggestions(m.store.Cycles())
	m.initCmd = m.countdown.Sync()
	m.syncLock()
	m.history.Refresh(m.store.Cycles(), m.clock.Now())
	return m
}

// Init arms the countdown for a cycle that was active at startup.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

// Route returns the current route.
func (m Model) Route() ports.Route {
	return m.route
}

// Err returns the last error reported by the store, if any.
func (m Model) Err() error {
	return m.lastErr
}

func (m *Model) syncLock() {
	if m.store.ActiveCycleID() != "" {
		m.timer.Lock()
	} else {
		m.timer.Unlock()
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.Resize(msg.Width, msg.Height)

	case tickMsg:
		var err error
		cmd, err = m.countdown.Update(m.ctx, msg)
		if err != nil {
			m.logger.Error("countdown tick failed", "error", err)
			m.lastErr = err
		}
		m.syncLock()

	case cycleFinishedMsg:
		for _, c := range m.store.Cycles() {
			if c.ID == msg.cycleID {
				m.notice = fmt.Sprintf("Cycle finished: %s", c.Task)
			}
		}
		m.syncLock()

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			m.countdown.Stop()
			return m, tea.Batch(tea.SetWindowTitle(AppTitle), tea.Quit)
		}
	}

	if m.route == ports.RouteHistory {
		m.history.Refresh(m.store.Cycles(), m.clock.Now())
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.Quit) {
		return nil, true
	}

	// The filter box takes every other key while it has focus.
	if m.route == ports.RouteHistory && m.history.Filtering() {
		return m.history.Update(msg, m.keys), false
	}

	active := m.store.ActiveCycleID() != ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, false
	case key.Matches(msg, m.keys.Timer):
		m.route = ports.RouteTimer
		return nil, false
	case key.Matches(msg, m.keys.History):
		m.route = ports.RouteHistory
		return nil, false
	case key.Matches(msg, m.keys.Interrupt):
		if active {
			return m.interrupt(), false
		}
		return nil, false
	}

	if m.route == ports.RouteHistory {
		return m.history.Update(msg, m.keys), false
	}
	if active {
		return nil, false
	}
	if key.Matches(msg, m.keys.Start) {
		return m.submit(), false
	}
	m.notice = ""
	m.lastErr = nil
	return m.timer.Update(msg, m.keys), false
}

func (m *Model) submit() tea.Cmd {
	if !m.timer.CanSubmit() {
		return nil
	}
	res := m.timer.Validate()
	if !res.Valid() {
		return nil
	}

	c, err := m.store.CreateCycle(m.ctx, res.Value.Task, res.Value.MinutesAmount)
	if err != nil {
		m.logger.Error("failed to create cycle", "error", err)
		m.lastErr = err
		return nil
	}

	m.notice = ""
	m.lastErr = nil
	m.timer.Reset()
	m.timer.SetSuggestions(m.store.Cycles())
	m.timer.Lock()
	m.logger.Debug("cycle started from form", "id", c.ID)
	return m.countdown.Sync()
}

func (m *Model) interrupt() tea.Cmd {
	c, err := m.store.InterruptActiveCycle(m.ctx)
	if err != nil {
		m.logger.Error("failed to interrupt cycle", "error", err)
		m.lastErr = err
		return nil
	}
	if c != nil {
		m.notice = fmt.Sprintf("Cycle interrupted: %s", c.Task)
	}
	cmd := m.countdown.Sync()
	m.syncLock()
	return cmd
}

// View renders the TUI.
func (m Model) View() string {
	sections := []string{m.viewHeader()}

	switch m.route {
	case ports.RouteHistory:
		sections = append(sections, m.styles.title.Render(m.theme.IconHistory+" History"), m.history.View(m.styles))
	default:
		active := m.store.ActiveCycle()
		sections = append(sections,
			m.timer.View(m.styles, active),
			m.countdown.View(m.theme.ColorAccent, m.width),
			m.timer.Button(m.styles, active != nil),
		)
	}

	if m.lastErr != nil {
		sections = append(sections, m.styles.err.Render("Error: "+m.lastErr.Error()))
	} else if m.notice != "" {
		sections = append(sections, m.styles.accent.Render(m.notice))
	}

	sections = append(sections, m.help.View(routeKeys{
		km:      m.keys,
		history: m.route == ports.RouteHistory,
		active:  m.store.ActiveCycleID() != "",
	}))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	box := lipgloss.NewStyle().Padding(1, 2)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(content))
	}
	return box.Render(content)
}

func (m Model) viewHeader() string {
	title := m.styles.title.Render(m.theme.IconApp + " " + AppTitle)

	tabs := []string{}
	for _, t := range []struct {
		route ports.Route
		label string
	}{
		{ports.RouteTimer, m.theme.IconTimer + " Timer"},
		{ports.RouteHistory, m.theme.IconHistory + " History"},
	} {
		if t.route == m.route {
			tabs = append(tabs, m.styles.tabActive.Render(t.label))
		} else {
			tabs = append(tabs, m.styles.tab.Render(t.label))
		}
	}
	return title + "   " + strings.Join(tabs, "  ") + "\n"
}
