package outline

import "github.com/mvp-joe/code-outline/internal/treeutil"

// FindByType returns every node with the given type, root first.
func FindByType(root *Node, tag string) []*Node {
	return treeutil.FindAll(root, func(n *Node) bool { return n.Type == tag })
}

// FindByName returns every node with the given name, root first.
func FindByName(root *Node, name string) []*Node {
	return treeutil.FindAll(root, func(n *Node) bool { return n.Name == name })
}

// Named returns every named node, root first.
func Named(root *Node) []*Node {
	return treeutil.FindAll(root, (*Node).Named)
}

// WithFile returns a copy of the tree whose named nodes carry file.
func WithFile(root *Node, file string) *Node {
	if root == nil {
		return nil
	}
	return treeutil.Map(root, func(src *Node) *Node {
		n := &Node{Type: src.Type, Name: src.Name, Start: src.Start, End: src.End}
		if src.Named() {
			n.File = file
		}
		return n
	})
}
