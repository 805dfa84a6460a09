// Package cache keeps recently built outlines in memory so watch and MCP
// sessions only re-extract files whose content changed.
package cache

import (
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/code-outline/internal/outline"
)

// DefaultCapacity is the number of outlines kept when none is configured.
const DefaultCapacity = 4096

// OutlineCache is a bounded, concurrency-safe outline cache. Cached trees are
// shared between callers and must not be modified.
type OutlineCache struct {
	cache otter.Cache[Key, *outline.Node]
}

// New creates a cache holding up to capacity outlines.
func New(capacity int) (*OutlineCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := otter.MustBuilder[Key, *outline.Node](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build outline cache: %w", err)
	}
	return &OutlineCache{cache: c}, nil
}

// Get returns the outline stored under key.
func (c *OutlineCache) Get(key Key) (*outline.Node, bool) {
	return c.cache.Get(key)
}

// Set stores an outline under key.
func (c *OutlineCache) Set(key Key, node *outline.Node) {
	c.cache.Set(key, node)
}

// Invalidate drops every outline cached for path, whatever its content or
// options were.
func (c *OutlineCache) Invalidate(path string) {
	c.cache.DeleteByFunc(func(key Key, _ *outline.Node) bool {
		return key.Path == path
	})
}

// Len returns the number of cached outlines.
func (c *OutlineCache) Len() int {
	return c.cache.Size()
}

// Stats reports hits and misses since creation.
func (c *OutlineCache) Stats() (hits, misses int64) {
	s := c.cache.Stats()
	return s.Hits(), s.Misses()
}

// Close releases the cache's background resources.
func (c *OutlineCache) Close() {
	c.cache.Close()
}
