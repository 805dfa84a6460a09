package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/processor"
	"github.com/mvp-joe/code-outline/internal/render"
)

// ErrOutsideRoot is returned for request paths that resolve outside the
// project root.
var ErrOutsideRoot = errors.New("path is outside the project root")

// OutlineRequest is the argument shape of the get_outline tool. Unset
// optional fields fall back to the server's configuration.
type OutlineRequest struct {
	Paths     []string `json:"paths"`
	Format    string   `json:"format,omitempty"`
	MaxDepth  *int     `json:"max_depth,omitempty"`
	NamedOnly *bool    `json:"named_only,omitempty"`
	Annotate  *bool    `json:"annotate,omitempty"`
}

// AddOutlineTool registers the get_outline tool with an MCP server.
func AddOutlineTool(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_outline",
		mcp.WithDescription("Extract a structural outline (classes, functions, methods, declarations and their line numbers) from source files. The default compressed format is designed for LLM context windows."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Files, directories or glob patterns relative to the project root (e.g. ['src/app.ts'], ['lib'], ['**/*.py'])"),
			mcp.WithStringItems()),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(formatNames()...)),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum nesting depth to show; 0 means unlimited")),
		mcp.WithBoolean("named_only",
			mcp.Description("Keep only named declarations (default true); false keeps every syntax node")),
		mcp.WithBoolean("annotate",
			mcp.Description("Stamp each named node with its file path")),
	)

	s.AddTool(tool, createOutlineHandler(svc))
}

func createOutlineHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args OutlineRequest
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if len(args.Paths) == 0 {
			return mcp.NewToolResultError("paths parameter is required"), nil
		}

		out, err := svc.Outline(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// Outline resolves, extracts and renders one request.
func (s *Service) Outline(ctx context.Context, req OutlineRequest) (string, error) {
	cfg := *s.defaults
	if req.Format != "" {
		cfg.Output.Format = req.Format
	}
	if req.MaxDepth != nil {
		cfg.Outline.MaxDepth = *req.MaxDepth
	}
	if req.NamedOnly != nil {
		cfg.Outline.NamedOnly = *req.NamedOnly
	}
	if req.Annotate != nil {
		cfg.Output.AnnotateFiles = *req.Annotate
	}

	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return "", err
	}
	if cfg.Outline.MaxDepth < 0 {
		return "", fmt.Errorf("%w: max_depth must be >= 0, got %d", outline.ErrInvalidMaxDepth, cfg.Outline.MaxDepth)
	}

	paths, err := s.rooted(req.Paths)
	if err != nil {
		return "", err
	}
	files, err := s.discovery.Resolve(paths)
	if err != nil {
		return "", err
	}

	proc, err := processor.New(processor.Config{
		Languages: s.langs,
		Extractor: s.extractor,
		Options:   cfg.OutlineOptions(),
		Workers:   cfg.Processing.Workers,
		Cache:     s.cache,
		Logger:    s.logger,
	})
	if err != nil {
		return "", err
	}

	results, stats, err := proc.ProcessFiles(ctx, files)
	if err != nil {
		return "", err
	}
	s.logger.Debug("get_outline",
		"files", stats.Files,
		"failed", stats.Failed,
		"cache_hits", stats.CacheHits,
		"duration", stats.Duration)

	if stats.Succeeded == 0 && stats.Failed > 0 {
		return "", fmt.Errorf("no outlines produced: %w", firstError(results))
	}
	return render.Render(s.relative(results), format, render.Options{AnnotateFiles: cfg.Output.AnnotateFiles})
}

// rooted joins relative non-glob paths onto the project root and rejects
// any path that lands outside it. Globs are matched relative to the root by
// discovery, so they only need to stay relative and free of "..".
func (s *Service) rooted(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		if isGlob(p) {
			if filepath.IsAbs(p) || escapes(filepath.ToSlash(filepath.Clean(p))) {
				return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, p)
			}
			out[i] = p
			continue
		}
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(s.rootDir, p)
		}
		abs = filepath.Clean(abs)
		rel, err := filepath.Rel(s.rootDir, abs)
		if err != nil || escapes(filepath.ToSlash(rel)) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, p)
		}
		out[i] = abs
	}
	return out, nil
}

// escapes reports whether a cleaned slash path climbs above its base.
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}

// relative rewrites result paths relative to the root so outlines do not
// leak the server's absolute layout.
func (s *Service) relative(results []outline.FileResult) []outline.FileResult {
	out := make([]outline.FileResult, len(results))
	for i, r := range results {
		rel, err := filepath.Rel(s.rootDir, filepath.FromSlash(r.File))
		if err == nil && !escapes(filepath.ToSlash(rel)) {
			r.File = filepath.ToSlash(rel)
		}
		out[i] = r
	}
	return out
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func firstError(results []outline.FileResult) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.File, r.Err)
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return names
}
