package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/vanderheijden86/treeview/internal/nodesource"
	"github.com/vanderheijden86/treeview/pkg/watcher"
)

// runWatch renders once, then re-renders a source whenever its file changes
// and rewrites the output. It returns when ctx is cancelled.
func runWatch(ctx context.Context, rd renderer, paths []string, stdout, stderr io.Writer) int {
	for _, p := range paths {
		if p == nodesource.Stdin {
			fmt.Fprintln(stderr, "Error: -watch needs node files, not standard input")
			return exitUsage
		}
	}
	if rd.cfg.Render.Output == "" {
		fmt.Fprintln(stderr, "Error: -watch needs -out")
		return exitUsage
	}

	items, err := rd.renderAll(ctx, paths)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	if err := writeOutput(rd.cfg, items, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}

	w, err := watcher.NewWatcher(paths,
		watcher.WithDebounceDuration(time.Duration(rd.cfg.Watch.DebounceMS)*time.Millisecond),
		watcher.WithPollInterval(time.Duration(rd.cfg.Watch.PollMS)*time.Millisecond),
		watcher.WithForcePoll(rd.cfg.Watch.Poll),
		watcher.WithOnError(func(err error) {
			fmt.Fprintf(stderr, "Watch: %v\n", err)
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	if err := w.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	defer w.Stop()

	// Watcher paths are absolute; map them back to the order of items.
	index := make(map[string]int, len(paths))
	for i, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			index[abs] = i
		}
	}
	fmt.Fprintf(stderr, "Watching %d file(s), writing %s\n", len(paths), rd.cfg.Render.Output)

	for {
		select {
		case <-ctx.Done():
			return exitOK
		case changed := <-w.Changed():
			i, ok := index[changed]
			if !ok {
				continue
			}
			next, err := rd.renderOne(paths[i])
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				continue
			}
			diff := nodesource.Diff(items[i].nodes, next.nodes)
			items[i] = next
			if err := writeOutput(rd.cfg, items, stdout); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(stderr, "%s: %s\n", paths[i], diff.Summary())
		}
	}
}
