// Package watch re-runs a job whenever files below a directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
)

// DefaultDelay is the quiet period after the last event before the job runs.
const DefaultDelay = 300 * time.Millisecond

// Job is the work repeated after each burst of changes.
type Job func(ctx context.Context) error

// Watcher watches a directory tree and runs a job after changes settle.
type Watcher struct {
	root    string
	job     Job
	delay   time.Duration
	ignored []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithIgnoredNames skips events for files with these base names, typically
// the files the job itself writes.
func WithIgnoredNames(names ...string) Option {
	return func(w *Watcher) { w.ignored = append(w.ignored, names...) }
}

// New returns a watcher for root.
func New(root string, job Job, opts ...Option) *Watcher {
	w := &Watcher{root: root, job: job, delay: DefaultDelay}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the job once, then again after every settled burst of changes,
// until ctx is cancelled. Job failures are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	st, err := os.Stat(w.root)
	if err != nil {
		return derrors.ScanFailed(w.root, err)
	}
	if !st.IsDir() {
		return derrors.ScanFailed(w.root, errors.New("not a directory"))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()
	addDirsRecursive(fsw, w.root)

	requests, trigger, stop := newDebouncer(w.delay)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.runJob(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-requests:
				w.runJob(ctx)
			}
		}
	}()
	defer wg.Wait()

	slog.Info("Watching for changes", logfields.Path(w.root))
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) runJob(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.job(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("Regeneration failed", logfields.Error(err))
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) shouldIgnore(path string) bool {
	return slices.Contains(w.ignored, filepath.Base(path)) || shouldIgnoreEvent(path)
}

// newDebouncer returns a channel receiving one request per settled burst of
// trigger calls, the trigger, and a stop function cancelling any pending timer.
func newDebouncer(delay time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	requests := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return requests, trigger, stop
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports hidden files and editor temp/swap files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
