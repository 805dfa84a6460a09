package outline

import (
	"strings"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// Namer derives a human-readable name for a syntax node, or "" when the node
// has none. Implementations must be safe for concurrent use.
type Namer interface {
	Name(node syntax.Node, source []byte) string
}

// Extractor walks syntax trees and builds outlines. It holds no per-walk
// state, so one Extractor serves any number of concurrent files.
type Extractor struct {
	namer   Namer
	classes *Classification
}

// NewExtractor creates an extractor from a name registry and classification.
func NewExtractor(namer Namer, classes *Classification) *Extractor {
	return &Extractor{namer: namer, classes: classes}
}

// Extract builds the outline of the tree rooted at root. The root is always
// represented: if filtering would drop it entirely, a bare node of the root's
// type stands in. Panics raised while naming nodes are not recovered here.
func (e *Extractor) Extract(root syntax.Node, source []byte, opts Options) *Node {
	if root == nil {
		return nil
	}
	w := &walker{Extractor: e, source: source, opts: opts}
	if out := w.visit(root, 0); out != nil {
		return out
	}
	return bareNode(root)
}

type walker struct {
	*Extractor
	source []byte
	opts   Options
}

// visit decides what node contributes to the outline at depth. It returns
// nil when neither the node nor anything beneath it survives.
func (w *walker) visit(node syntax.Node, depth int) *Node {
	out := bareNode(node)
	out.Name = strings.TrimSpace(w.namer.Name(node, w.source))
	kind := node.Kind()

	switch {
	case out.Name != "" || !w.opts.NamedOnly:
		if depth < w.opts.MaxDepth && w.classes.IsContainer(kind) {
			if children := w.children(node, depth+1); len(children) > 0 {
				out.Children = children
			}
		}
		return out

	case w.classes.IsStructural(kind):
		// Structural types are containers by construction.
		if depth < w.opts.MaxDepth {
			out.Children = w.children(node, depth+1)
			if out.Children == nil {
				out.Children = []*Node{}
			}
		}
		return out

	default:
		// Pass-through: the node is invisible, so its children are searched
		// at the same depth and without the container gate.
		if depth >= w.opts.MaxDepth {
			return nil
		}
		found := w.children(node, depth)
		switch len(found) {
		case 0:
			return nil
		case 1:
			return found[0]
		default:
			for _, child := range found {
				w.trim(child, depth+1)
			}
			out.Children = found
			return out
		}
	}
}

// children visits the admissible children of node in source order.
func (w *walker) children(node syntax.Node, depth int) []*Node {
	var out []*Node
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !w.admit(child) {
			continue
		}
		if n := w.visit(child, depth); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// admit filters out anonymous tokens, parser error markers and insignificant
// types before any recursion.
func (w *walker) admit(node syntax.Node) bool {
	return node != nil && node.IsNamed() && !node.IsError() && !w.classes.IsInsignificant(node.Kind())
}

// trim cuts a subtree that was re-parented one level deeper by a splice
// wrapper so it stays within the depth budget.
func (w *walker) trim(node *Node, depth int) {
	if depth >= w.opts.MaxDepth {
		node.Children = nil
		return
	}
	for _, child := range node.Children {
		w.trim(child, depth+1)
	}
}

func bareNode(node syntax.Node) *Node {
	return &Node{
		Type:  node.Kind(),
		Start: positionOf(node.StartPosition()),
		End:   positionOf(node.EndPosition()),
	}
}
