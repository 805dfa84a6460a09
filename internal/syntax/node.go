package syntax

// Point is a 0-indexed row/column position in source text.
type Point struct {
	Row    uint
	Column uint
}

// Node is the read-only view of a concrete syntax tree node consumed by the
// outline engine. Implementations must never mutate the underlying tree.
type Node interface {
	// Kind returns the grammar type tag, e.g. "function_declaration".
	Kind() string

	StartByte() uint
	EndByte() uint
	StartPosition() Point
	EndPosition() Point

	// ChildCount and Child expose every child, named or anonymous, in source order.
	ChildCount() int
	Child(i int) Node
	Parent() Node

	// IsNamed reports whether the node is a named grammar rule rather than an
	// anonymous token such as punctuation or a keyword.
	IsNamed() bool

	// IsError reports whether the parser inserted the node as an error or
	// missing-token marker while recovering from invalid input.
	IsError() bool
}

// Text returns the source text spanned by node. It panics when the node's
// offsets do not fit inside source, which only happens when a tree is paired
// with the wrong source buffer.
func Text(node Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// Children returns the direct children of node as a slice.
func Children(node Node) []Node {
	if node == nil {
		return nil
	}
	count := node.ChildCount()
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if child := node.Child(i); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// FirstChildOfKind finds the first direct child with one of the given kinds.
func FirstChildOfKind(node Node, kinds ...string) Node {
	if node == nil {
		return nil
	}
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		for _, kind := range kinds {
			if child.Kind() == kind {
				return child
			}
		}
	}
	return nil
}

// ChildrenOfKind finds all direct children with the given kind.
func ChildrenOfKind(node Node, kind string) []Node {
	var results []Node
	if node == nil {
		return results
	}
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// Walk visits node and its descendants depth-first, pre-order. Returning
// false from visit skips the visited node's subtree.
func Walk(node Node, visit func(Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		Walk(node.Child(i), visit)
	}
}
