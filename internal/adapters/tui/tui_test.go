package tui

import (
	"strings"
	"testing"

	"github.com/xvierd/ignite-timer/internal/config"
	"github.com/xvierd/ignite-timer/internal/domain"
)

func TestResolveTheme(t *testing.T) {
	if got := resolveTheme(nil); got != config.DefaultThemeConfig() {
		t.Errorf("resolveTheme(nil) = %+v, want defaults", got)
	}

	custom := config.ThemeConfig{ColorAccent: "#123456"}
	got := resolveTheme(&custom)
	if got.ColorAccent != "#123456" {
		t.Errorf("custom accent lost: %s", got.ColorAccent)
	}
	if got.ColorError != config.DefaultThemeConfig().ColorError {
		t.Errorf("empty field should fall back to default, got %q", got.ColorError)
	}
}

func TestRenderBigTime(t *testing.T) {
	d := domain.Remaining(25*60, 0)

	wide := renderBigTime(d, "#00B37E", 80)
	if lines := strings.Split(wide, "\n"); len(lines) != 5 {
		t.Errorf("big digits should be 5 lines, got %d", len(lines))
	}

	narrow := renderBigTime(d, "#00B37E", 20)
	if !strings.Contains(narrow, "25:00") {
		t.Errorf("narrow terminal should fall back to MM:SS, got %q", narrow)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1 minute"},
		{25, "25 minutes"},
		{60, "60 minutes"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.n); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRouteKeys_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	idle := routeKeys{km: km}.ShortHelp()
	if idle[0].Help().Key != "enter" {
		t.Errorf("idle timer help should lead with start, got %q", idle[0].Help().Key)
	}

	active := routeKeys{km: km, active: true}.ShortHelp()
	if active[0].Help().Key != "ctrl+s" {
		t.Errorf("active timer help should lead with interrupt, got %q", active[0].Help().Key)
	}

	history := routeKeys{km: km, history: true}.ShortHelp()
	if history[1].Help().Key != "/" {
		t.Errorf("history help should offer filter, got %q", history[1].Help().Key)
	}
}
