// Package discovery resolves command-line path arguments to source files.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultIgnore lists directories never worth outlining.
var DefaultIgnore = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"dist/**",
	"build/**",
	"target/**",
	"__pycache__/**",
	".venv/**",
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds files under a root directory with include globs and
// ignore rules.
type FileDiscovery struct {
	rootDir        string
	includes       []compiledPattern
	ignorePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance. Patterns are
// matched against slash-separated paths relative to rootDir.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{rootDir: rootDir}

	var err error
	if fd.includes, err = compileAll(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compileAll(ignorePatterns); err != nil {
		return nil, err
	}
	return fd, nil
}

// IncludeForExtensions builds "**/*<ext>" include patterns.
func IncludeForExtensions(exts []string) []string {
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		patterns = append(patterns, "**/*"+ext)
	}
	return patterns
}

func compileAll(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		out = append(out, compiledPattern{pattern: pattern, glob: g})
	}
	return out, nil
}

// Resolve expands args into an ordered, de-duplicated file list. A file
// argument is taken as-is, even if no include pattern matches it, so the
// caller can report it. A directory is walked with the include and ignore
// rules. Anything else is treated as a glob relative to the root.
func (fd *FileDiscovery) Resolve(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{fd.rootDir}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && !info.IsDir():
			add(arg)
		case err == nil:
			found, err := fd.walk(arg, fd.includes)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		case os.IsNotExist(err) && isGlob(arg):
			pattern, err := compileAll([]string{filepath.ToSlash(arg)})
			if err != nil {
				return nil, err
			}
			found, err := fd.walk(fd.rootDir, pattern)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			for _, f := range found {
				add(f)
			}
		default:
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
	}
	return files, nil
}

// walk returns files under dir matching any of patterns, sorted.
func (fd *FileDiscovery) walk(dir string, patterns []compiledPattern) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if fd.shouldIgnore(relPath) {
			return nil
		}
		if matchesAnyPattern(relPath, patterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Ignored reports whether path, absolute or relative to the root, falls
// under an ignore pattern. Paths outside the root are never ignored.
func (fd *FileDiscovery) Ignored(path string) bool {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(fd.rootDir, path)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return false
	}
	return fd.shouldIgnore(rel)
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}
	// A directory "node_modules" should match pattern "node_modules/**".
	return matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A root-level path also tries patterns with a leading **/ removed, so
	// "**/*.ts" matches both "index.ts" and "src/app.ts".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(path) {
				return true
			}
		}
	}
	return false
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
