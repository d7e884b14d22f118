// Package config handles loading and saving lungmap configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/lungmap/config.yaml
//
// A missing file is not an error; DefaultConfig is used instead. Command
// line flags override environment variables, which override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	Mouse      *bool   `yaml:"mouse,omitempty"`       // Capture mouse input (default true)
	Hover      *bool   `yaml:"hover,omitempty"`       // Highlight hotspot under the pointer (default true)
	Markdown   bool    `yaml:"markdown,omitempty"`    // Render descriptions through glamour
	SplitRatio float64 `yaml:"split_ratio,omitempty"` // Diagram share of the width (0.3-0.8)
}

// WatchConfig controls live reload of a custom catalog file.
type WatchConfig struct {
	Enabled    *bool `yaml:"enabled,omitempty"`
	DebounceMs int   `yaml:"debounce_ms,omitempty"`
	Poll       bool  `yaml:"poll,omitempty"` // Force polling instead of fsnotify
}

// Config is the top-level configuration for lungmap.
type Config struct {
	Catalog        string      `yaml:"catalog,omitempty"` // Custom YAML catalog; empty means built-in
	Image          string      `yaml:"image,omitempty"`   // PNG/JPEG diagram; empty means built-in art
	BrowserCommand string      `yaml:"browser_command,omitempty"`
	UI             UIConfig    `yaml:"ui,omitempty"`
	Watch          WatchConfig `yaml:"watch,omitempty"`
}

// Split ratio bounds.
const (
	MinSplitRatio = 0.3
	MaxSplitRatio = 0.8
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			SplitRatio: 0.55,
		},
		Watch: WatchConfig{
			DebounceMs: 200,
		},
	}
}

// MouseEnabled reports whether mouse capture is on.
func (c Config) MouseEnabled() bool { return boolOr(c.UI.Mouse, true) }

// HoverEnabled reports whether hover highlighting is on.
func (c Config) HoverEnabled() bool { return boolOr(c.UI.Hover, true) }

// WatchEnabled reports whether the custom catalog is watched for changes.
func (c Config) WatchEnabled() bool { return boolOr(c.Watch.Enabled, true) }

// Debounce returns the watch debounce as a duration.
func (c Config) Debounce() time.Duration {
	if c.Watch.DebounceMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// ClampedSplitRatio returns the split ratio limited to the allowed range.
func (c Config) ClampedSplitRatio() float64 {
	r := c.UI.SplitRatio
	switch {
	case r == 0:
		return DefaultConfig().UI.SplitRatio
	case r < MinSplitRatio:
		return MinSplitRatio
	case r > MaxSplitRatio:
		return MaxSplitRatio
	default:
		return r
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ConfigDir returns the XDG config directory for lungmap.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lungmap")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lungmap")
}

// ConfigPath returns the full path to config.yaml. LUNGMAP_CONFIG overrides
// the XDG location.
func ConfigPath() string {
	if p := os.Getenv("LUNGMAP_CONFIG"); p != "" {
		return p
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file and applies environment overrides.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFrom(path); err != nil {
			return cfg, err
		}
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.Image = expandHome(cfg.Image)
	return cfg, nil
}

// ApplyEnv overlays LUNGMAP_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("LUNGMAP_CATALOG"); v != "" {
		cfg.Catalog = expandHome(v)
	}
	if v := os.Getenv("LUNGMAP_IMAGE"); v != "" {
		cfg.Image = expandHome(v)
	}
	if v := os.Getenv("LUNGMAP_BROWSER"); v != "" {
		cfg.BrowserCommand = v
	}
	if b, ok := envBool("LUNGMAP_MOUSE"); ok {
		cfg.UI.Mouse = &b
	}
	if b, ok := envBool("LUNGMAP_MARKDOWN"); ok {
		cfg.UI.Markdown = b
	}
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func envBool(name string) (bool, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return false, false
	}
	switch strings.ToLower(v) {
	case "y", "yes", "on":
		return true, true
	case "n", "no", "off":
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
