package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("IGNITE_HOME", dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timer.DefaultMinutes != 25 {
		t.Errorf("expected default minutes 25, got %d", cfg.Timer.DefaultMinutes)
	}
	if time.Duration(cfg.Timer.TickInterval) != time.Second {
		t.Errorf("expected tick interval 1s, got %s", cfg.Timer.TickInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"empty default minutes allowed", func(c *Config) { c.Timer.DefaultMinutes = 0 }, false},
		{"default minutes too high", func(c *Config) { c.Timer.DefaultMinutes = 61 }, true},
		{"negative default minutes", func(c *Config) { c.Timer.DefaultMinutes = -1 }, true},
		{"zero tick interval", func(c *Config) { c.Timer.TickInterval = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"upper-case log level", func(c *Config) { c.Log.Level = "DEBUG" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	dir := useTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err, "Load() should write the default config file")
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	useTempHome(t)

	cfg := DefaultConfig()
	cfg.Timer.DefaultMinutes = 50
	cfg.Timer.TickInterval = Duration(500 * time.Millisecond)
	cfg.Notifications.Enabled = false
	cfg.Theme.ColorAccent = "#123456"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSet(t *testing.T) {
	useTempHome(t)

	cfg, err := Set("timer.default_minutes", "15")
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Timer.DefaultMinutes)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, loaded.Timer.DefaultMinutes)

	_, err = Set("timer.default_minutes", "90")
	assert.Error(t, err, "out-of-range value must be rejected")

	_, err = Set("no.such.key", "1")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	useTempHome(t)
	t.Setenv("IGNITE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSet_DoesNotPersistEnvOverrides(t *testing.T) {
	dir := useTempHome(t)
	_, err := Load()
	require.NoError(t, err)
	t.Setenv("IGNITE_LOG_LEVEL", "debug")
	t.Setenv("IGNITE_TIMER_DEFAULT_MINUTES", "45")

	cfg, err := Set("theme.color_accent", "#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", cfg.Theme.ColorAccent)
	assert.Equal(t, "debug", cfg.Log.Level, "overrides still apply to the running config")

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "debug")
	assert.NotContains(t, string(data), "default_minutes = 45")

	// Empty variables count as unset for viper.
	t.Setenv("IGNITE_LOG_LEVEL", "")
	t.Setenv("IGNITE_TIMER_DEFAULT_MINUTES", "")
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", loaded.Log.Level)
	assert.Equal(t, 25, loaded.Timer.DefaultMinutes)
	assert.Equal(t, "#FFFFFF", loaded.Theme.ColorAccent)
}

func TestKeysAndValue(t *testing.T) {
	cfg := DefaultConfig()
	keys := Keys(cfg)
	assert.Contains(t, keys, "timer.default_minutes")
	assert.IsNonDecreasing(t, keys)

	v, ok := Value(cfg, "timer.tick_interval")
	assert.True(t, ok)
	assert.Equal(t, "1s", v)

	_, ok = Value(cfg, "missing")
	assert.False(t, ok)
}

func TestGetLogPath(t *testing.T) {
	dir := useTempHome(t)

	cfg := DefaultConfig()
	p, err := GetLogPath(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ignite.log"), p)

	cfg.Log.File = "/tmp/custom.log"
	p, _ = GetLogPath(cfg)
	assert.Equal(t, "/tmp/custom.log", p)
}
