package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/treeview"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Widget.IconFormat != treeview.IconPNG {
		t.Errorf("expected icon format png, got %q", cfg.Widget.IconFormat)
	}
	if cfg.Render.HostFontSize != 16 {
		t.Errorf("expected host font size 16, got %v", cfg.Render.HostFontSize)
	}
	if cfg.Watch.DebounceMS != 200 {
		t.Errorf("expected debounce 200ms, got %d", cfg.Watch.DebounceMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Render.Title != "Tree" {
		t.Errorf("expected default config, got title %q", cfg.Render.Title)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
widget:
  font_size: 1.25em
  folder_image_color: steelblue
  highlight_color: "#ffeeaa"
  icon_format: svg
  cache_fragments: true
  shadow_mode: open
  addon_css: "<style>span { color: navy; }</style>"

render:
  title: Project tree
  output: ~/out/tree.html

preview:
  width: 60
  show_ids: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w := cfg.Widget
	if w.FontSize != "1.25em" || w.FolderImageColor != "steelblue" || w.IconFormat != "svg" {
		t.Errorf("unexpected widget options: %+v", w)
	}
	if !w.CacheFragments || w.ShadowMode != host.ShadowOpen {
		t.Errorf("unexpected widget flags: %+v", w)
	}
	if !strings.Contains(w.AddonCSS, "navy") {
		t.Errorf("addon css = %q", w.AddonCSS)
	}
	if cfg.Render.Title != "Project tree" {
		t.Errorf("title = %q", cfg.Render.Title)
	}
	// Output should have ~ expanded
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "out/tree.html"); cfg.Render.Output != want {
		t.Errorf("expected expanded path %q, got %q", want, cfg.Render.Output)
	}
	// Unset keys keep their defaults
	if cfg.Render.HostFontSize != 16 || cfg.Watch.PollMS != 2000 {
		t.Errorf("defaults lost: %+v %+v", cfg.Render, cfg.Watch)
	}
	if cfg.Preview.Width != 60 || !cfg.Preview.ShowIDs {
		t.Errorf("preview = %+v", cfg.Preview)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("widget: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Widget.FontSize = "14px"
	cfg.Widget.GroupName = "nav"
	cfg.Preview.Width = 100

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Widget != cfg.Widget || loaded.Render != cfg.Render || loaded.Preview != cfg.Preview || loaded.Watch != cfg.Watch {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"font size", func(c *Config) { c.Widget.FontSize = "big!" }, "widget.font_size"},
		{"folder color", func(c *Config) { c.Widget.FolderImageColor = "#12" }, "widget.folder_image_color"},
		{"highlight", func(c *Config) { c.Widget.HighlightColor = "notacolor" }, "widget.highlight_color"},
		{"icon format", func(c *Config) { c.Widget.IconFormat = "gif" }, "widget.icon_format"},
		{"preview width", func(c *Config) { c.Preview.Width = -1 }, "preview.width"},
		{"watch", func(c *Config) { c.Watch.DebounceMS = -5 }, "watch intervals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"~/", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		got := expandHome(tt.input)
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigDir(); got != "/custom/config/treeview" {
		t.Errorf("expected /custom/config/treeview, got %q", got)
	}
	if got := ConfigPath(); got != "/custom/config/treeview/config.yaml" {
		t.Errorf("unexpected config path %q", got)
	}
}
