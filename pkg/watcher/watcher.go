// Package watcher reports changes to node source files. It uses fsnotify on
// the files' directories and falls back to polling when fsnotify is
// unavailable or polling is forced.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/treeview/pkg/debug"
)

// DefaultPollInterval is the default polling interval for fallback mode.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnv forces polling mode when set to a truthy value.
const ForcePollEnv = "TREEVIEW_FORCE_POLL"

// Common errors.
var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrNoPaths        = errors.New("no paths to watch")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithOnChange sets the callback invoked with the path of a changed file.
func WithOnChange(fn func(path string)) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback invoked on errors. Errors about one file are
// wrapped with its path.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// fileState is the last observed state of one watched file.
type fileState struct {
	mtime     time.Time
	size      int64
	debouncer *Debouncer
}

// Watcher monitors a set of files.
type Watcher struct {
	paths            []string
	debounceDuration time.Duration
	pollInterval     time.Duration
	onChange         func(string)
	onError          func(error)
	forcePoll        bool

	fsWatcher   *fsnotify.Watcher
	useFallback bool
	files       map[string]*fileState

	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
	changeCh chan string
}

// NewWatcher creates a watcher for the given files.
func NewWatcher(paths []string, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	w := &Watcher{
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		onChange:         func(string) {},
		onError:          func(error) {},
		files:            make(map[string]*fileState),
		changeCh:         make(chan string, len(paths)),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		if _, dup := w.files[abs]; dup {
			continue
		}
		w.paths = append(w.paths, abs)
		w.files[abs] = &fileState{debouncer: NewDebouncer(w.debounceDuration)}
	}
	return w, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.useFallback = w.forcePoll || envBool(ForcePollEnv)

	for _, p := range w.paths {
		st := w.files[p]
		info, err := os.Stat(p)
		switch {
		case err == nil:
			st.mtime, st.size = info.ModTime(), info.Size()
		case os.IsPermission(err):
			w.cancel()
			return fmt.Errorf("%s: %w", p, ErrPermission)
		default:
			// Not created yet.
			st.mtime, st.size = time.Time{}, 0
		}
	}

	if !w.useFallback {
		if err := w.startFsnotify(ctx); err != nil {
			debug.Log("watcher: fsnotify unavailable, polling: %v", err)
			w.useFallback = true
		}
	}
	if w.useFallback {
		go w.watchPolling(ctx)
	}

	w.started = true
	debug.Log("watcher: watching %d files (polling=%v)", len(w.paths), w.useFallback)
	return nil
}

// startFsnotify watches the directory of every file, which also catches
// atomic replace-by-rename writes.
func (w *Watcher) startFsnotify(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dirs := make(map[string]bool)
	for _, p := range w.paths {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	w.fsWatcher = fsw
	go w.watchFsnotify(ctx, fsw.Events, fsw.Errors)
	return nil
}

// Stop stops watching. The Changed channel stays open.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
	for _, st := range w.files {
		st.debouncer.Cancel()
	}
	w.started = false
}

// IsPolling returns true if the watcher is using polling mode.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.useFallback
}

// IsStarted returns true if the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns a channel that receives the path of each changed file.
// Sends never block; a full channel drops the notification.
func (w *Watcher) Changed() <-chan string {
	return w.changeCh
}

// Paths returns the absolute paths being watched.
func (w *Watcher) Paths() []string {
	return append([]string(nil), w.paths...)
}

// PollInterval returns the polling interval used when polling mode is active.
func (w *Watcher) PollInterval() time.Duration {
	return w.pollInterval
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func (w *Watcher) watchFsnotify(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			st, watched := w.files[event.Name]
			if !watched {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				w.onError(fmt.Errorf("%s: %w", event.Name, ErrFileRemoved))
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				path := event.Name
				st.debouncer.Trigger(func() { w.notifyChange(path) })
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) watchPolling(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, p := range w.paths {
				w.poll(p)
			}
		}
	}
}

func (w *Watcher) poll(path string) {
	st := w.files[path]
	info, err := os.Stat(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			w.mu.RLock()
			hadFile := !st.mtime.IsZero()
			w.mu.RUnlock()
			if hadFile {
				w.onError(fmt.Errorf("%s: %w", path, ErrFileRemoved))
			}
		case os.IsPermission(err):
			w.onError(fmt.Errorf("%s: %w", path, ErrPermission))
		default:
			w.onError(err)
		}
		return
	}

	w.mu.Lock()
	changed := info.ModTime().After(st.mtime) || info.Size() != st.size
	if changed {
		st.mtime, st.size = info.ModTime(), info.Size()
	}
	w.mu.Unlock()

	if changed {
		st.debouncer.Trigger(func() { w.notifyChange(path) })
	}
}

// notifyChange invokes the callback and signals the change channel, unless
// the watcher has been stopped meanwhile.
func (w *Watcher) notifyChange(path string) {
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if !started {
		return
	}

	debug.Log("watcher: %s changed", path)
	w.onChange(path)
	select {
	case w.changeCh <- path:
	default:
	}
}
