// Package config provides configuration management for Ignite.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/ignite-timer/internal/domain"
)

// Config holds all configuration for the Ignite application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig holds countdown settings.
type TimerConfig struct {
	// DefaultMinutes prefills the minutes field; 0 leaves it empty.
	DefaultMinutes int      `mapstructure:"default_minutes"`
	TickInterval   Duration `mapstructure:"tick_interval"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorAccent    string `mapstructure:"color_accent"`
	ColorInterrupt string `mapstructure:"color_interrupt"`
	ColorTitle     string `mapstructure:"color_title"`
	ColorTask      string `mapstructure:"color_task"`
	ColorHelp      string `mapstructure:"color_help"`
	ColorError     string `mapstructure:"color_error"`
	GradientStart  string `mapstructure:"gradient_start"`
	GradientEnd    string `mapstructure:"gradient_end"`
	IconApp        string `mapstructure:"icon_app"`
	IconTimer      string `mapstructure:"icon_timer"`
	IconHistory    string `mapstructure:"icon_history"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorAccent:    "#00B37E",
		ColorInterrupt: "#AB222E",
		ColorTitle:     "#8D8D99",
		ColorTask:      "#C4C4CC",
		ColorHelp:      "#7C7C8A",
		ColorError:     "#F75A68",
		GradientStart:  "#00875F",
		GradientEnd:    "#00B37E",
		IconApp:        "⏲",
		IconTimer:      "⏱",
		IconHistory:    "📜",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			DefaultMinutes: 25,
			TickInterval:   Duration(time.Second),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Validate checks values that would break the timer.
func (c *Config) Validate() error {
	if c.Timer.DefaultMinutes != 0 &&
		(c.Timer.DefaultMinutes < domain.MinMinutesAmount || c.Timer.DefaultMinutes > domain.MaxMinutesAmount) {
		return fmt.Errorf("timer.default_minutes must be 0 or between %d and %d, got %d",
			domain.MinMinutesAmount, domain.MaxMinutesAmount, c.Timer.DefaultMinutes)
	}
	if time.Duration(c.Timer.TickInterval) <= 0 {
		return fmt.Errorf("timer.tick_interval must be positive, got %s", c.Timer.TickInterval)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureFile(configPath); err != nil {
		return nil, err
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return decode(v)
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newFileViper(configPath)
	for key, value := range flatten(cfg) {
		v.Set(key, value)
	}

	return v.WriteConfigAs(configPath)
}

// Set updates a single key in the config file after validating the result.
// Only the file contents are rewritten; IGNITE_* overrides apply to the
// returned config but are never saved.
func Set(key, value string) (*Config, error) {
	if _, ok := flatten(DefaultConfig())[key]; !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := ensureFile(configPath); err != nil {
		return nil, err
	}
	v := newFileViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)

	updated, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := Save(updated); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return Load()
}

// ensureFile writes the default config when none exists yet.
func ensureFile(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}
	return nil
}

// Keys returns all settable keys in sorted order.
func Keys(cfg *Config) []string {
	flat := flatten(cfg)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the string form of a config key.
func Value(cfg *Config, key string) (string, bool) {
	v, ok := flatten(cfg)[key]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// GetConfigDir returns the directory holding Ignite's files.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("IGNITE_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ignite"), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetLogPath returns the log file path, defaulting to ignite.log in the
// config directory.
func GetLogPath(cfg *Config) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ignite.log"), nil
}

// newViper reads the file with IGNITE_* environment overrides on top.
func newViper(configPath string) *viper.Viper {
	v := newFileViper(configPath)
	v.SetEnvPrefix("ignite")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// newFileViper sees only the file and the defaults. Everything that writes
// the file goes through it.
func newFileViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// flatten maps every config key to its value as written to TOML.
func flatten(cfg *Config) map[string]any {
	return map[string]any{
		"timer.default_minutes": cfg.Timer.DefaultMinutes,
		"timer.tick_interval":   cfg.Timer.TickInterval.String(),
		"notifications.enabled": cfg.Notifications.Enabled,
		"notifications.sound":   cfg.Notifications.Sound,
		"log.level":             cfg.Log.Level,
		"log.file":              cfg.Log.File,
		"theme.color_accent":    cfg.Theme.ColorAccent,
		"theme.color_interrupt": cfg.Theme.ColorInterrupt,
		"theme.color_title":     cfg.Theme.ColorTitle,
		"theme.color_task":      cfg.Theme.ColorTask,
		"theme.color_help":      cfg.Theme.ColorHelp,
		"theme.color_error":     cfg.Theme.ColorError,
		"theme.gradient_start":  cfg.Theme.GradientStart,
		"theme.gradient_end":    cfg.Theme.GradientEnd,
		"theme.icon_app":        cfg.Theme.IconApp,
		"theme.icon_timer":      cfg.Theme.IconTimer,
		"theme.icon_history":    cfg.Theme.IconHistory,
	}
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	for key, value := range flatten(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}
