package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/ignite-timer/internal/config"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles are the lipgloss styles derived from a theme.
type styles struct {
	title     lipgloss.Style
	tabActive lipgloss.Style
	tab       lipgloss.Style
	task      lipgloss.Style
	label     lipgloss.Style
	help      lipgloss.Style
	err       lipgloss.Style
	accent    lipgloss.Style
	interrupt lipgloss.Style
	disabled  lipgloss.Style
	banner    lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	accent := lipgloss.Color(theme.ColorAccent)
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		tabActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		tab:       lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		task:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorTask)),
		label:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTask)),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorError)),
		accent:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		interrupt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(theme.ColorInterrupt)).Padding(0, 2),
		disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)).Faint(true).Padding(0, 2),
		banner:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 2),
	}
}
