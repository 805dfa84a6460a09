// Package treeutil holds generic algorithms over rooted, ordered trees.
//
// Every function takes the tree by reference and returns fresh collections;
// none of them mutate their argument. Nodes are compared by identity, so T is
// normally a pointer type.
package treeutil

// Node is any tree node that exposes its ordered children. A nil slice means
// the node is a leaf; an empty non-nil slice is an explicit, childless branch.
type Node[T any] interface {
	comparable
	Branches() []T
}

// Grafter is a Node that can produce a copy of itself carrying new children.
// Map relies on it so recursion into children is guaranteed by the type
// rather than probed at runtime.
type Grafter[T any] interface {
	Node[T]
	Graft(children []T) T
}

// Visitor receives each node with its depth (root is 0) and parent (the zero
// value for the root).
type Visitor[T any] func(node T, depth int, parent T)

// Walk visits every node depth-first, pre-order.
func Walk[T Node[T]](root T, visit Visitor[T]) {
	var zero T
	if root == zero {
		return
	}
	walk(root, 0, zero, visit)
}

func walk[T Node[T]](node T, depth int, parent T, visit Visitor[T]) {
	visit(node, depth, parent)
	for _, child := range node.Branches() {
		walk(child, depth+1, node, visit)
	}
}

// Count returns the number of nodes in the tree.
func Count[T Node[T]](root T) int {
	count := 0
	Walk(root, func(T, int, T) { count++ })
	return count
}

// Filter returns every node for which keep returns true, in pre-order.
func Filter[T Node[T]](root T, keep func(node T, depth int, parent T) bool) []T {
	var out []T
	Walk(root, func(node T, depth int, parent T) {
		if keep(node, depth, parent) {
			out = append(out, node)
		}
	})
	return out
}

// FindAll returns every node matching pred, root first.
func FindAll[T Node[T]](root T, pred func(T) bool) []T {
	return Filter(root, func(node T, _ int, _ T) bool { return pred(node) })
}

// FindFirst returns the first node in pre-order matching pred, stopping the
// search as soon as it is found.
func FindFirst[T Node[T]](root T, pred func(T) bool) (T, bool) {
	var zero T
	if root == zero {
		return zero, false
	}
	if pred(root) {
		return root, true
	}
	for _, child := range root.Branches() {
		if found, ok := FindFirst(child, pred); ok {
			return found, true
		}
	}
	return zero, false
}

// IsLeaf reports whether node has no children, absent or empty.
func IsLeaf[T Node[T]](node T) bool {
	return len(node.Branches()) == 0
}

// HasChildren reports whether node has at least one child.
func HasChildren[T Node[T]](node T) bool {
	return len(node.Branches()) > 0
}

// Leaves returns every leaf, left to right.
func Leaves[T Node[T]](root T) []T {
	return Filter(root, func(node T, _ int, _ T) bool { return IsLeaf(node) })
}

// MaxDepth returns the number of levels in the tree: 1 for a single leaf and
// 0 for an empty tree.
func MaxDepth[T Node[T]](root T) int {
	deepest := 0
	Walk(root, func(_ T, depth int, _ T) {
		if depth+1 > deepest {
			deepest = depth + 1
		}
	})
	return deepest
}

// AtDepth returns the nodes exactly depth levels below root (root is depth 0).
func AtDepth[T Node[T]](root T, depth int) []T {
	return Filter(root, func(_ T, d int, _ T) bool { return d == depth })
}

// Depth returns target's depth below root, or -1 when target is not in the
// tree. The lookup is a linear identity search.
func Depth[T Node[T]](root T, target T) int {
	path := Path(root, target)
	if path == nil {
		return -1
	}
	return len(path) - 1
}

// Path returns the nodes from root to target inclusive, or nil when target is
// not reachable from root.
func Path[T Node[T]](root T, target T) []T {
	var zero T
	if root == zero || target == zero {
		return nil
	}
	if root == target {
		return []T{root}
	}
	for _, child := range root.Branches() {
		if sub := Path(child, target); sub != nil {
			return append([]T{root}, sub...)
		}
	}
	return nil
}

// Map rebuilds the tree by applying fn to every node. fn sees the original
// node and returns its replacement; the replacement's children are the
// mapped children of the original. A leaf stays a leaf and an explicit empty
// child list stays explicit.
func Map[T Node[T], U Grafter[U]](root T, fn func(T) U) U {
	mapped := fn(root)
	branches := root.Branches()
	if branches == nil {
		return mapped
	}
	children := make([]U, 0, len(branches))
	for _, child := range branches {
		children = append(children, Map(child, fn))
	}
	return mapped.Graft(children)
}
