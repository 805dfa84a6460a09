// Package processor runs the read, parse and extract pipeline over batches of
// files. Each file is independent: one file failing, or a naming rule
// panicking on it, never affects the others.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/code-outline/internal/cache"
	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/syntax"
)

// ErrExtractionPanic indicates a naming rule panicked while outlining a file.
var ErrExtractionPanic = errors.New("extraction panicked")

// Stats summarizes one batch.
type Stats struct {
	Files     int
	Succeeded int
	Failed    int
	CacheHits int
	Duration  time.Duration
}

// Config wires a Processor.
type Config struct {
	Languages *syntax.Languages
	Extractor *outline.Extractor
	Options   outline.Options

	// Workers bounds concurrent files; zero means one per CPU.
	Workers int

	// Cache is optional.
	Cache *cache.OutlineCache

	// Progress is optional.
	Progress ProgressReporter

	// Logger is optional; failures are logged at warn.
	Logger *slog.Logger
}

// Processor turns file paths into outlines.
type Processor struct {
	langs     *syntax.Languages
	extractor *outline.Extractor
	opts      outline.Options
	workers   int
	cache     *cache.OutlineCache
	progress  ProgressReporter
	logger    *slog.Logger
}

// New creates a Processor. Options are validated up front so a bad depth is
// a configuration error rather than one failure per file.
func New(cfg Config) (*Processor, error) {
	if cfg.Languages == nil {
		return nil, fmt.Errorf("languages are required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	p := &Processor{
		langs:     cfg.Languages,
		extractor: cfg.Extractor,
		opts:      cfg.Options,
		workers:   cfg.Workers,
		cache:     cfg.Cache,
		progress:  cfg.Progress,
		logger:    cfg.Logger,
	}
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}
	if p.progress == nil {
		p.progress = NoOpProgressReporter{}
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p, nil
}

// Options returns the walk options every file is outlined with.
func (p *Processor) Options() outline.Options { return p.opts }

// ProcessFiles outlines files concurrently. The result slice has one entry
// per input, in input order; failed files carry a nil outline and an error.
// Only context cancellation fails the batch as a whole.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) ([]outline.FileResult, Stats, error) {
	start := time.Now()
	results := make([]outline.FileResult, len(files))
	var hits atomic.Int64

	p.progress.OnStart(len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, hit := p.processFile(gctx, file)
			if hit {
				hits.Add(1)
			}
			results[i] = res
			p.progress.OnFileProcessed(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Files: len(files), CacheHits: int(hits.Load()), Duration: time.Since(start)}
	for _, r := range results {
		if r.OK() {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	p.progress.OnComplete(stats)
	return results, stats, nil
}

// ProcessSource outlines in-memory source as if it were read from path.
func (p *Processor) ProcessSource(ctx context.Context, path string, source []byte) outline.FileResult {
	res, _ := p.outline(ctx, displayPath(path), source)
	return res
}

func (p *Processor) processFile(ctx context.Context, path string) (outline.FileResult, bool) {
	name := displayPath(path)
	source, err := os.ReadFile(path)
	if err != nil {
		return p.fail(name, fmt.Errorf("failed to read file: %w", err)), false
	}
	return p.outline(ctx, name, source)
}

// outline parses and extracts one file, consulting the cache when present.
func (p *Processor) outline(ctx context.Context, name string, source []byte) (res outline.FileResult, hit bool) {
	var key cache.Key
	if p.cache != nil {
		key = cache.KeyFor(name, source, p.opts)
		if node, ok := p.cache.Get(key); ok {
			return outline.FileResult{File: name, Outline: node}, true
		}
	}

	tree, err := p.langs.ParseFile(ctx, name, source)
	if err != nil {
		return p.fail(name, err), false
	}
	defer tree.Close()

	node, err := p.extract(tree)
	if err != nil {
		return p.fail(name, err), false
	}
	if p.cache != nil {
		p.cache.Set(key, node)
	}
	return outline.FileResult{File: name, Outline: node}, false
}

// extract runs the engine and turns a naming panic into an error for this
// file alone.
func (p *Processor) extract(tree *syntax.Tree) (node *outline.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			node, err = nil, fmt.Errorf("%w: %v", ErrExtractionPanic, r)
		}
	}()
	return p.extractor.Extract(tree.Root(), tree.Source, p.opts), nil
}

func (p *Processor) fail(name string, err error) outline.FileResult {
	p.logger.Warn("failed to outline file", "file", name, "error", err)
	return outline.FileResult{File: name, Err: err}
}

// displayPath normalizes separators so headings and aliases are stable
// across platforms.
func displayPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
