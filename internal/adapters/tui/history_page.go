package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/services"
)

// historyPage lists every cycle of the store, newest first.
type historyPage struct {
	table     table.Model
	filter    textinput.Model
	filtering bool
	shown     []*domain.Cycle
}

func newHistoryPage(theme styles) historyPage {
	t := table.New(
		table.WithColumns(historyColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	ts.Selected = ts.Selected.Foreground(theme.accent.GetForeground()).Bold(true)
	t.SetStyles(ts)

	f := textinput.New()
	f.Prompt = "/ "
	f.Placeholder = "filter tasks"
	f.CharLimit = 120

	return historyPage{table: t, filter: f}
}

func historyColumns(width int) []table.Column {
	taskWidth := max(width-14-18-13-8, 16)
	return []table.Column{
		{Title: "Task", Width: taskWidth},
		{Title: "Duration", Width: 14},
		{Title: "Started", Width: 18},
		{Title: "Status", Width: 13},
	}
}

// Refresh rebuilds the rows from cycles using the current filter.
func (h *historyPage) Refresh(cycles []*domain.Cycle, now time.Time) {
	h.shown = services.History(cycles, h.filter.Value())
	rows := make([]table.Row, 0, len(h.shown))
	for _, c := range h.shown {
		rows = append(rows, table.Row{
			c.Task,
			formatMinutes(c.MinutesAmount),
			humanize.RelTime(c.StartDate, now, "ago", "from now"),
			domain.GetStatusLabel(c.Status()),
		})
	}
	h.table.SetRows(rows)
	if h.table.Cursor() >= len(rows) {
		h.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Resize fits the table to the terminal.
func (h *historyPage) Resize(width, height int) {
	h.table.SetColumns(historyColumns(width))
	h.table.SetHeight(max(height-12, 3))
}

// Filtering reports whether the filter box has focus.
func (h historyPage) Filtering() bool {
	return h.filtering
}

// Update handles a key press on the history route.
func (h *historyPage) Update(msg tea.KeyMsg, km KeyMap) tea.Cmd {
	if h.filtering {
		switch {
		case key.Matches(msg, km.ClearFilter):
			h.filter.SetValue("")
			h.filter.Blur()
			h.filtering = false
			h.table.Focus()
			return nil
		case msg.Type == tea.KeyEnter:
			h.filter.Blur()
			h.filtering = false
			h.table.Focus()
			return nil
		}
		var cmd tea.Cmd
		h.filter, cmd = h.filter.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, km.Filter):
		h.filtering = true
		h.table.Blur()
		return h.filter.Focus()
	case key.Matches(msg, km.ClearFilter):
		h.filter.SetValue("")
		return nil
	}
	var cmd tea.Cmd
	h.table, cmd = h.table.Update(msg)
	return cmd
}

// View renders the filter and the table.
func (h historyPage) View(s styles) string {
	var b strings.Builder
	if h.filtering || h.filter.Value() != "" {
		b.WriteString(h.filter.View())
		b.WriteString("\n\n")
	}
	if len(h.shown) == 0 {
		if h.filter.Value() != "" {
			b.WriteString(s.help.Render("No cycles match the filter."))
		} else {
			b.WriteString(s.help.Render("No cycles yet. Start one from the timer."))
		}
		return b.String()
	}
	b.WriteString(h.table.View())
	return b.String()
}

func formatMinutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}
