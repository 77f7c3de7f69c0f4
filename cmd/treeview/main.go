// Command treeview renders node forests as self-contained HTML tree widgets,
// prints them as text, or previews them interactively in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/treeview/internal/nodesource"
	"github.com/vanderheijden86/treeview/pkg/config"
	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/metrics"
	"github.com/vanderheijden86/treeview/pkg/model"
	"github.com/vanderheijden86/treeview/pkg/preview"
	"github.com/vanderheijden86/treeview/pkg/version"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	configPath  string
	out         string
	title       string
	fontSize    string
	color       string
	iconFormat  string
	strict      bool
	watch       bool
	preview     bool
	print       bool
	width       int
	showMetrics bool
	version     bool
	help        bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("treeview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Config file (default: XDG config path)")
	fs.StringVar(&f.out, "out", "", "Output HTML file, or directory for one page per source (default: stdout)")
	fs.StringVar(&f.title, "title", "", "Page title")
	fs.StringVar(&f.fontSize, "font-size", "", "Widget font size (CSS length or unitless)")
	fs.StringVar(&f.color, "color", "", "Folder icon color")
	fs.StringVar(&f.iconFormat, "icon-format", "", "Folder icon format: png or svg")
	fs.BoolVar(&f.strict, "strict", false, "Reject forests with several active nodes, duplicate ids or empty names")
	fs.BoolVar(&f.watch, "watch", false, "Re-render whenever a source file changes")
	fs.BoolVar(&f.preview, "preview", false, "Preview the first source interactively")
	fs.BoolVar(&f.print, "print", false, "Print the visible tree as text instead of HTML")
	fs.IntVar(&f.width, "width", 0, "Text width for -print and -preview (0: config or unlimited)")
	fs.BoolVar(&f.showMetrics, "metrics", false, "Print timing metrics as JSON to stderr")
	fs.BoolVar(&f.version, "version", false, "Show version")
	fs.BoolVar(&f.help, "help", false, "Show help")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: treeview [options] [nodes.json|nodes.yaml|-]...")
		fmt.Fprintln(stderr, "\nRenders node forests as style-isolated tree widgets.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.help {
		fs.Usage()
	}
	return f, fs.Args(), nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(f *cliFlags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFrom(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if f.title != "" {
		cfg.Render.Title = f.title
	}
	if f.out != "" {
		cfg.Render.Output = f.out
	}
	if f.fontSize != "" {
		cfg.Widget.FontSize = f.fontSize
	}
	if f.color != "" {
		cfg.Widget.FolderImageColor = f.color
	}
	if f.iconFormat != "" {
		cfg.Widget.IconFormat = f.iconFormat
	}
	if f.strict {
		cfg.Render.Strict = true
	}
	if f.width > 0 {
		cfg.Preview.Width = f.width
	}
	// Exported pages install the deselect script, which needs an open root.
	if cfg.Widget.ShadowMode == "" && !f.preview && !f.print {
		cfg.Widget.ShadowMode = host.ShadowOpen
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, paths, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if f.help {
		return exitOK
	}
	if f.version {
		fmt.Fprintf(stdout, "treeview %s\n", version.Version)
		return exitOK
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitUsage
	}
	if len(paths) == 0 {
		paths = []string{nodesource.Stdin}
	}
	stdinUses := 0
	for _, p := range paths {
		if p == nodesource.Stdin {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		fmt.Fprintln(stderr, "Error: standard input can only be read once")
		return exitUsage
	}

	rd := renderer{
		cfg:    cfg,
		strict: cfg.Render.Strict,
		load: func(path string) ([]model.Node, nodesource.Source, error) {
			return nodesource.LoadFrom(path, stdin)
		},
	}
	code := dispatch(ctx, f, rd, paths, stdout, stderr)

	if f.showMetrics {
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metricsReport()); err != nil {
			fmt.Fprintf(stderr, "Error writing metrics: %v\n", err)
		}
	}
	return code
}

// metricsReport collects timing and cache statistics for -metrics.
func metricsReport() any {
	caches := make([]metrics.CacheStats, 0, len(metrics.AllCacheMetrics()))
	for _, c := range metrics.AllCacheMetrics() {
		caches = append(caches, c.Stats())
	}
	return struct {
		Timings []metrics.TimingStats `json:"timings"`
		Caches  []metrics.CacheStats  `json:"caches"`
	}{metrics.AllTimingStats(), caches}
}

func dispatch(ctx context.Context, f *cliFlags, rd renderer, paths []string, stdout, stderr io.Writer) int {
	switch {
	case f.preview:
		return runPreview(ctx, rd, paths, stderr)
	case f.watch:
		return runWatch(ctx, rd, paths, stdout, stderr)
	}

	items, err := rd.renderAll(ctx, paths)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	if f.print {
		for i, it := range items {
			if len(items) > 1 {
				if i > 0 {
					fmt.Fprintln(stdout)
				}
				fmt.Fprintf(stdout, "# %s\n", it.source.Path)
			}
			fmt.Fprint(stdout, preview.Snapshot(it.root, rd.cfg.Preview.Width))
		}
		return exitOK
	}
	if err := writeOutput(rd.cfg, items, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// writeOutput writes all widgets to one page, or one page per source when
// the output is a directory.
func writeOutput(cfg config.Config, items []rendered, stdout io.Writer) error {
	out := cfg.Render.Output
	if out == "" {
		return buildPage(cfg, items).Write(stdout)
	}
	if isDir(out) {
		for i, it := range items {
			name := strings.TrimPrefix(it.widgetID(i), "treeview-") + ".html"
			if err := writePageFile(filepath.Join(out, name), buildPage(cfg, []rendered{it})); err != nil {
				return err
			}
		}
		return nil
	}
	return writePageFile(out, buildPage(cfg, items))
}

func isDir(path string) bool {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writePageFile writes atomically through a temporary file, so watchers of
// the output never see a partial page.
func writePageFile(path string, p pageWriter) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".treeview-*.html")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := p.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	debug.Log("treeview: wrote %s", path)
	return nil
}

type pageWriter interface {
	Write(w io.Writer) error
}

func runPreview(ctx context.Context, rd renderer, paths []string, stderr io.Writer) int {
	if paths[0] == nodesource.Stdin {
		fmt.Fprintln(stderr, "Error: -preview needs a node file; standard input drives the terminal")
		return exitUsage
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(stderr, "Error: -preview needs an interactive terminal")
		return exitUsage
	}
	it, err := rd.renderOne(paths[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	opts := preview.Options{
		Title:     rd.cfg.Render.Title + ": " + it.source.Path,
		Width:     rd.cfg.Preview.Width,
		Highlight: it.widget.Options().HighlightColor,
		ShowIDs:   rd.cfg.Preview.ShowIDs,
		ExpandAll: rd.cfg.Preview.ExpandAll,
		Mouse:     rd.cfg.Preview.MouseWheel,
	}
	if err := preview.Run(ctx, it.root, opts); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}
