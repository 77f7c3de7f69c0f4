// Package config handles loading and saving treeview configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/treeview/config.yaml
//
// Command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/treeview/pkg/raster"
	"github.com/vanderheijden86/treeview/pkg/treeview"
	"github.com/vanderheijden86/treeview/pkg/units"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// RenderConfig controls static page export.
type RenderConfig struct {
	Title        string  `yaml:"title,omitempty"`
	HostFontSize float64 `yaml:"host_font_size,omitempty"` // Root font size of the page in px
	Output       string  `yaml:"output,omitempty"`         // Output file or directory; "" writes to stdout
	Strict       bool    `yaml:"strict,omitempty"`         // Reject forests that fail validation
}

// PreviewConfig controls the terminal preview.
type PreviewConfig struct {
	Width      int  `yaml:"width,omitempty"` // 0 uses the terminal width
	ShowIDs    bool `yaml:"show_ids,omitempty"`
	ExpandAll  bool `yaml:"expand_all,omitempty"`
	MouseWheel bool `yaml:"mouse_wheel,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int  `yaml:"debounce_ms,omitempty"`
	Poll       bool `yaml:"poll,omitempty"` // Force polling instead of fsnotify
	PollMS     int  `yaml:"poll_ms,omitempty"`
}

// Config is the top-level configuration for treeview.
type Config struct {
	Widget  treeview.Options `yaml:"widget,omitempty"`
	Render  RenderConfig     `yaml:"render,omitempty"`
	Preview PreviewConfig    `yaml:"preview,omitempty"`
	Watch   WatchConfig      `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Widget: treeview.Options{
			IconFormat: treeview.IconPNG,
		},
		Render: RenderConfig{
			Title:        "Tree",
			HostFontSize: units.DefaultFontSize,
		},
		Watch: WatchConfig{
			DebounceMS: 200,
			PollMS:     2000,
		},
	}
}

// ConfigDir returns the XDG config directory for treeview.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "treeview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "treeview")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
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
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Render.Output = expandHome(cfg.Render.Output)
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
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

// Validate reports every value the widget would silently replace with a
// default. The widget itself never fails on these; the CLI surfaces them.
func (c Config) Validate() error {
	var errs []error
	w := c.Widget
	if w.FontSize != "" {
		if _, err := units.Parse(w.FontSize); err != nil {
			errs = append(errs, fmt.Errorf("%w: widget.font_size: %v", ErrInvalid, err))
		}
	}
	for name, v := range map[string]string{
		"widget.folder_image_color": w.FolderImageColor,
		"widget.highlight_color":    w.HighlightColor,
	} {
		if v != "" && !raster.ValidColor(v) {
			errs = append(errs, fmt.Errorf("%w: %s: bad color %q", ErrInvalid, name, v))
		}
	}
	switch strings.ToLower(w.IconFormat) {
	case "", treeview.IconPNG, treeview.IconSVG:
	default:
		errs = append(errs, fmt.Errorf("%w: widget.icon_format: %q", ErrInvalid, w.IconFormat))
	}
	if c.Render.HostFontSize < 0 {
		errs = append(errs, fmt.Errorf("%w: render.host_font_size: %v", ErrInvalid, c.Render.HostFontSize))
	}
	if c.Preview.Width < 0 {
		errs = append(errs, fmt.Errorf("%w: preview.width: %d", ErrInvalid, c.Preview.Width))
	}
	if c.Watch.DebounceMS < 0 || c.Watch.PollMS < 0 {
		errs = append(errs, fmt.Errorf("%w: watch intervals must not be negative", ErrInvalid))
	}
	return errors.Join(errs...)
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
