// Package mcp exposes outline extraction as a Model Context Protocol tool
// served over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/code-outline/internal/cache"
	"github.com/mvp-joe/code-outline/internal/config"
	"github.com/mvp-joe/code-outline/internal/discovery"
	"github.com/mvp-joe/code-outline/internal/names"
	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/syntax"
	"github.com/mvp-joe/code-outline/internal/watcher"
)

const serverName = "outline"

// Service holds everything a get_outline call needs. It is safe for
// concurrent use; each call builds its own processor over shared parts.
type Service struct {
	rootDir   string
	defaults  *config.Config
	langs     *syntax.Languages
	extractor *outline.Extractor
	discovery *discovery.FileDiscovery
	cache     *cache.OutlineCache
	logger    *slog.Logger
}

// NewService creates a Service rooted at rootDir. A nil cfg uses defaults.
func NewService(rootDir string, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	fd, err := discovery.NewFileDiscovery(absRoot, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	c, err := cache.New(cfg.Processing.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Service{
		rootDir:   absRoot,
		defaults:  cfg,
		langs:     syntax.NewLanguages(),
		extractor: outline.NewExtractor(names.NewDefaultRegistry(), outline.DefaultClassification()),
		discovery: fd,
		cache:     c,
		logger:    logger,
	}, nil
}

// Invalidate drops cached outlines for the given files.
func (s *Service) Invalidate(files []string) {
	for _, f := range files {
		s.cache.Invalidate(filepath.ToSlash(filepath.Clean(f)))
	}
}

// Close releases the cache.
func (s *Service) Close() { s.cache.Close() }

// Server is the stdio MCP server.
type Server struct {
	mcp     *server.MCPServer
	svc     *Service
	watcher watcher.FileWatcher
	logger  *slog.Logger
}

// NewServer creates an MCP server with the get_outline tool registered. When
// watch is true, edits under the root evict cached outlines as they happen;
// otherwise stale entries are simply never hit again since keys carry a
// content digest.
func NewServer(svc *Service, version string, watch bool) (*Server, error) {
	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(true),
		),
		svc:    svc,
		logger: svc.logger,
	}
	AddOutlineTool(s.mcp, svc)

	if watch {
		fw, err := watcher.NewFileWatcher(
			[]string{svc.rootDir},
			svc.langs.Extensions(),
			watcher.WithIgnore(func(path string, _ bool) bool { return svc.discovery.Ignored(path) }),
			watcher.WithLogger(svc.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		s.watcher = fw
	}
	return s, nil
}

// Serve runs the server over stdio until a shutdown signal, a transport
// error or ctx cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Start(ctx, s.svc.Invalidate); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer s.watcher.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server ready", "root", s.svc.rootDir)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	s.svc.Close()
	return nil
}
