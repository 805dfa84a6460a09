package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterNode adapts a tree-sitter node to the Node interface.
type treeSitterNode struct {
	node *sitter.Node
}

// Wrap adapts a tree-sitter node. A nil node yields a nil Node.
func Wrap(node *sitter.Node) Node {
	if node == nil {
		return nil
	}
	return treeSitterNode{node: node}
}

func (n treeSitterNode) Kind() string { return n.node.Kind() }

func (n treeSitterNode) StartByte() uint { return n.node.StartByte() }

func (n treeSitterNode) EndByte() uint { return n.node.EndByte() }

func (n treeSitterNode) StartPosition() Point {
	p := n.node.StartPosition()
	return Point{Row: p.Row, Column: p.Column}
}

func (n treeSitterNode) EndPosition() Point {
	p := n.node.EndPosition()
	return Point{Row: p.Row, Column: p.Column}
}

func (n treeSitterNode) ChildCount() int { return int(n.node.ChildCount()) }

func (n treeSitterNode) Child(i int) Node {
	if i < 0 {
		return nil
	}
	return Wrap(n.node.Child(uint(i)))
}

func (n treeSitterNode) Parent() Node { return Wrap(n.node.Parent()) }

func (n treeSitterNode) IsNamed() bool { return n.node.IsNamed() }

func (n treeSitterNode) IsError() bool { return n.node.IsError() || n.node.IsMissing() }
