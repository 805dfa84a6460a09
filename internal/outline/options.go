package outline

import (
	"errors"
	"fmt"
	"math"
)

// Unbounded disables the depth limit.
const Unbounded = math.MaxInt

// ErrInvalidMaxDepth indicates a non-positive depth limit.
var ErrInvalidMaxDepth = errors.New("invalid max depth")

// Options configures one walk of one file. It is passed by value and never
// changes during the walk.
type Options struct {
	// MaxDepth bounds visible nesting; the root sits at depth 0 and nodes at
	// MaxDepth are kept without descending further.
	MaxDepth int

	// NamedOnly keeps named nodes and structural placeholders, splicing out
	// everything else while preserving named descendants.
	NamedOnly bool
}

// DefaultOptions returns unbounded depth with named-only filtering.
func DefaultOptions() Options {
	return Options{MaxDepth: Unbounded, NamedOnly: true}
}

// DepthLimit converts a user-facing depth where 0 means "no limit".
func DepthLimit(depth int) int {
	if depth == 0 {
		return Unbounded
	}
	return depth
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.MaxDepth <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidMaxDepth, o.MaxDepth)
	}
	return nil
}
