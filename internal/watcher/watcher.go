// Package watcher reports batches of changed source files so watch mode can
// re-outline only what changed.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher monitors source files for changes with debouncing and
// pause/resume support.
type FileWatcher interface {
	// Start begins watching, calling onChange with each debounced batch of
	// changed files, sorted and de-duplicated.
	Start(ctx context.Context, onChange func(files []string)) error

	// Stop stops the watcher and waits for its goroutine. Safe to call twice.
	Stop() error

	// Pause holds batches back while still collecting events.
	Pause()

	// Resume releases batches; anything collected while paused fires at once.
	Resume()
}

// Option customizes a FileWatcher.
type Option func(*fileWatcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(fw *fileWatcher) { fw.debounce = d }
}

// WithIgnore skips directories and files for which ignore returns true.
func WithIgnore(ignore func(path string, isDir bool) bool) Option {
	return func(fw *fileWatcher) { fw.ignore = ignore }
}

// WithLogger sets the logger for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(fw *fileWatcher) { fw.logger = logger }
}

type fileWatcher struct {
	watcher    *fsnotify.Watcher
	extensions map[string]bool
	debounce   time.Duration
	ignore     func(path string, isDir bool) bool
	logger     *slog.Logger
	onChange   func(files []string)

	cancel context.CancelFunc
	doneCh chan struct{}
	stop   sync.Once

	mu      sync.Mutex // guards paused, pending and timer
	paused  bool
	pending map[string]bool
	timer   *time.Timer
	fireCh  chan struct{}
}

// NewFileWatcher watches dirs recursively for files with one of extensions.
func NewFileWatcher(dirs, extensions []string, opts ...Option) (FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &fileWatcher{
		watcher:    w,
		extensions: make(map[string]bool, len(extensions)),
		debounce:   DefaultDebounce,
		ignore:     func(string, bool) bool { return false },
		logger:     slog.New(slog.DiscardHandler),
		doneCh:     make(chan struct{}),
		pending:    make(map[string]bool),
		fireCh:     make(chan struct{}, 1),
	}
	for _, ext := range extensions {
		fw.extensions[ext] = true
	}
	for _, opt := range opts {
		opt(fw)
	}

	for _, dir := range dirs {
		if err := fw.addRecursive(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	return fw, nil
}

func (fw *fileWatcher) Start(ctx context.Context, onChange func(files []string)) error {
	if onChange == nil {
		return nil
	}
	fw.onChange = onChange

	var watchCtx context.Context
	watchCtx, fw.cancel = context.WithCancel(ctx)
	go fw.loop(watchCtx)
	return nil
}

func (fw *fileWatcher) Stop() error {
	var err error
	fw.stop.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		}
		fw.mu.Lock()
		if fw.timer != nil {
			fw.timer.Stop()
		}
		fw.mu.Unlock()
		err = fw.watcher.Close()
	})
	return err
}

func (fw *fileWatcher) Pause() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.paused = true
}

func (fw *fileWatcher) Resume() {
	fw.mu.Lock()
	wasPaused := fw.paused
	fw.paused = false
	fw.mu.Unlock()

	if wasPaused {
		fw.flush()
	}
}

func (fw *fileWatcher) loop(ctx context.Context) {
	defer close(fw.doneCh)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)

		case <-fw.fireCh:
			fw.mu.Lock()
			paused := fw.paused
			fw.mu.Unlock()
			if !paused {
				fw.flush()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (fw *fileWatcher) handle(event fsnotify.Event) {
	// New directories join the watch set.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.addRecursive(event.Name); err != nil {
				fw.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !fw.extensions[filepath.Ext(event.Name)] || fw.ignore(event.Name, false) {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.pending[event.Name] = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		select {
		case fw.fireCh <- struct{}{}:
		default:
		}
	})
}

// flush reports and clears the pending batch.
func (fw *fileWatcher) flush() {
	fw.mu.Lock()
	if len(fw.pending) == 0 {
		fw.mu.Unlock()
		return
	}
	files := make([]string, 0, len(fw.pending))
	for f := range fw.pending {
		files = append(files, f)
	}
	fw.pending = make(map[string]bool)
	fw.mu.Unlock()

	sort.Strings(files)
	fw.onChange(files)
}

func (fw *fileWatcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fw.logger.Warn("cannot access path", "path", path, "error", err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && fw.ignore(path, true) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("failed to watch directory", "dir", path, "error", err)
		}
		return nil
	})
}
