package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/form"
)

const (
	fieldTask = iota
	fieldMinutes
)

// timerPage holds the cycle form shown on the timer route.
type timerPage struct {
	inputs         [2]textinput.Model
	focus          int
	result         form.Result
	defaultMinutes int
}

func newTimerPage(defaultMinutes int) timerPage {
	task := textinput.New()
	task.Placeholder = "Give your project a name"
	task.CharLimit = 120
	task.Width = 40
	task.ShowSuggestions = true
	task.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("right"))
	task.Prompt = ""

	minutes := textinput.New()
	minutes.Placeholder = "00"
	minutes.CharLimit = 3
	minutes.Width = 4
	minutes.Prompt = ""

	p := timerPage{
		inputs:         [2]textinput.Model{task, minutes},
		defaultMinutes: defaultMinutes,
	}
	p.Reset()
	return p
}

// Reset restores the form defaults and focuses the task field.
func (p *timerPage) Reset() {
	p.inputs[fieldTask].SetValue("")
	p.inputs[fieldMinutes].SetValue("")
	if p.defaultMinutes > 0 {
		p.inputs[fieldMinutes].SetValue(strconv.Itoa(p.defaultMinutes))
	}
	p.result = form.Result{}
	p.focusField(fieldTask)
}

// Input returns the raw form values.
func (p timerPage) Input() form.Input {
	return form.Input{
		Task:          p.inputs[fieldTask].Value(),
		MinutesAmount: p.inputs[fieldMinutes].Value(),
	}
}

// CanSubmit reports whether the submit action is enabled.
func (p timerPage) CanSubmit() bool {
	return form.CanSubmit(p.Input())
}

// SetSuggestions offers previously used task names.
func (p *timerPage) SetSuggestions(cycles []*domain.Cycle) {
	seen := make(map[string]bool, len(cycles))
	var names []string
	for i := len(cycles) - 1; i >= 0; i-- {
		name := cycles[i].Task
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	p.inputs[fieldTask].SetSuggestions(names)
}

// Lock blurs both inputs so they ignore keys while a cycle runs.
func (p *timerPage) Lock() {
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
}

// Unlock refocuses the field that had focus before Lock.
func (p *timerPage) Unlock() {
	p.focusField(p.focus)
}

func (p *timerPage) focusField(i int) {
	p.focus = i
	for j := range p.inputs {
		if j == i {
			p.inputs[j].Focus()
		} else {
			p.inputs[j].Blur()
		}
	}
}

// Validate runs the form rules and keeps the result for inline errors.
func (p *timerPage) Validate() form.Result {
	p.result = form.Validate(p.Input())
	return p.result
}

// Update handles a key press while the form is unlocked.
func (p *timerPage) Update(msg tea.KeyMsg, km KeyMap) tea.Cmd {
	switch {
	case key.Matches(msg, km.NextField):
		p.focusField((p.focus + 1) % len(p.inputs))
		return nil
	case key.Matches(msg, km.PrevField):
		p.focusField((p.focus + len(p.inputs) - 1) % len(p.inputs))
		return nil
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	// Editing a field clears its stale error.
	if p.result.FieldMessage(p.fieldName()) != "" {
		p.result = form.Result{Errors: withoutField(p.result.Errors, p.fieldName())}
	}
	return cmd
}

func (p timerPage) fieldName() string {
	if p.focus == fieldMinutes {
		return form.FieldMinutesAmount
	}
	return form.FieldTask
}

func withoutField(errs []form.FieldError, field string) []form.FieldError {
	out := errs[:0:0]
	for _, e := range errs {
		if e.Field != field {
			out = append(out, e)
		}
	}
	return out
}

// View renders the form line, inline errors and the action button.
func (p timerPage) View(s styles, active *domain.Cycle) string {
	var task, minutes string
	if active != nil {
		task = s.task.Render(active.Task)
		minutes = s.task.Render(strconv.Itoa(active.MinutesAmount))
	} else {
		task = p.inputs[fieldTask].View()
		minutes = p.inputs[fieldMinutes].View()
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		s.label.Render("I will work on "), task,
		s.label.Render(" for "), minutes,
		s.label.Render(" minutes."),
	)

	var errLines []string
	for _, field := range []string{form.FieldTask, form.FieldMinutesAmount} {
		if msg := p.result.FieldMessage(field); msg != "" {
			errLines = append(errLines, s.err.Render("• "+msg))
		}
	}

	parts := []string{line}
	if len(errLines) > 0 {
		parts = append(parts, strings.Join(errLines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// Button renders the start or interrupt action.
func (p timerPage) Button(s styles, active bool) string {
	switch {
	case active:
		return s.interrupt.Render("■ Interrupt (ctrl+s)")
	case p.CanSubmit():
		return s.banner.Render("▶ Start (enter)")
	default:
		return s.disabled.Render("▶ Start")
	}
}
