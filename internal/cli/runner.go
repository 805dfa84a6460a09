package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/mvp-joe/code-outline/internal/cache"
	"github.com/mvp-joe/code-outline/internal/config"
	"github.com/mvp-joe/code-outline/internal/discovery"
	"github.com/mvp-joe/code-outline/internal/logging"
	"github.com/mvp-joe/code-outline/internal/names"
	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/processor"
	"github.com/mvp-joe/code-outline/internal/render"
	"github.com/mvp-joe/code-outline/internal/syntax"
	"github.com/mvp-joe/code-outline/internal/watcher"
)

type runnerConfig struct {
	RootDir string
	Config  *config.Config
	Output  string // empty means Stdout
	Quiet   bool
	Watch   bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// runner executes one outline invocation: discover, process, render, write.
type runner struct {
	rootDir   string
	format    render.Format
	renderOpt render.Options
	output    string
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
	langs     *syntax.Languages
	discovery *discovery.FileDiscovery
	cache     *cache.OutlineCache
	proc      *processor.Processor
}

func newRunner(rc runnerConfig) (*runner, error) {
	cfg := rc.Config
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log, rc.Stderr)
	langs := syntax.NewLanguages()

	fd, err := discovery.NewFileDiscovery(rc.RootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	r := &runner{
		rootDir:   rc.RootDir,
		format:    format,
		renderOpt: render.Options{AnnotateFiles: cfg.Output.AnnotateFiles},
		output:    rc.Output,
		stdout:    rc.Stdout,
		stderr:    rc.Stderr,
		logger:    logger,
		langs:     langs,
		discovery: fd,
	}

	// Only watch mode outlines the same files twice.
	if rc.Watch {
		if r.cache, err = cache.New(cfg.Processing.CacheSize); err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
	}

	quiet := rc.Quiet || logging.ParseLevel(cfg.Log.Level) <= slog.LevelDebug
	r.proc, err = processor.New(processor.Config{
		Languages: langs,
		Extractor: outline.NewExtractor(names.NewDefaultRegistry(), outline.DefaultClassification()),
		Options:   cfg.OutlineOptions(),
		Workers:   cfg.Processing.Workers,
		Cache:     r.cache,
		Progress:  NewCLIProgressReporter(rc.Stderr, quiet),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the cache, if any.
func (r *runner) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// once outlines args and writes the rendered batch.
func (r *runner) once(ctx context.Context, args []string) error {
	files, err := r.discovery.Resolve(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no source files found")
	}

	results, stats, err := r.proc.ProcessFiles(ctx, files)
	if err != nil {
		return err
	}
	r.logger.Debug("outline complete",
		"files", stats.Files,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"cache_hits", stats.CacheHits,
		"duration", stats.Duration)

	out, err := render.Render(results, r.format, r.renderOpt)
	if err != nil {
		return err
	}
	return r.write(out)
}

func (r *runner) write(out string) error {
	if r.output == "" {
		_, err := io.WriteString(r.stdout, out)
		return err
	}
	if err := os.WriteFile(r.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// watch renders once, then again after every debounced batch of changes
// until ctx is cancelled. Changed files are evicted from the cache so the
// rest of the batch is served without re-parsing.
func (r *runner) watch(ctx context.Context, args []string) error {
	if err := r.once(ctx, args); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(
		r.watchDirs(args),
		r.langs.Extensions(),
		watcher.WithIgnore(func(path string, _ bool) bool { return r.discovery.Ignored(path) }),
		watcher.WithLogger(r.logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	onChange := func(changed []string) {
		fw.Pause()
		defer fw.Resume()

		for _, f := range changed {
			r.cache.Invalidate(filepath.ToSlash(filepath.Clean(f)))
		}
		r.logger.Info("files changed, re-rendering", "count", len(changed))
		if err := r.once(ctx, args); err != nil && ctx.Err() == nil {
			r.logger.Error("re-render failed", "error", err)
		}
	}
	if err := fw.Start(ctx, onChange); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	r.logger.Info("watching for changes")
	<-ctx.Done()
	r.logger.Info("watch mode stopped")
	return nil
}

// watchDirs returns the directories to watch for args: directories as
// given, the parent of each file, and the root for globs and no args.
func (r *runner) watchDirs(args []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	if len(args) == 0 {
		add(r.rootDir)
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err != nil:
			add(r.rootDir)
		case info.IsDir():
			add(arg)
		default:
			add(filepath.Dir(arg))
		}
	}
	sort.Strings(dirs)
	return dirs
}
