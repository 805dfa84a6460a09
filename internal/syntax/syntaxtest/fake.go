// Package syntaxtest builds in-memory syntax trees for tests that need exact
// control over node kinds without going through a real grammar.
package syntaxtest

import (
	"strings"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// Node is a fake syntax node. Leaves carry text; branches derive their span
// from their children once Build lays the tree out.
type Node struct {
	kind     string
	text     string
	named    bool
	isError  bool
	start    uint
	end      uint
	startPos syntax.Point
	endPos   syntax.Point
	children []*Node
	parent   *Node
}

// Leaf creates a named leaf node such as an identifier.
func Leaf(kind, text string) *Node {
	return &Node{kind: kind, text: text, named: true}
}

// Token creates an anonymous token such as punctuation or a keyword.
func Token(text string) *Node {
	return &Node{kind: text, text: text}
}

// Branch creates a named node with children.
func Branch(kind string, children ...*Node) *Node {
	return &Node{kind: kind, named: true, children: children}
}

// Error creates a parser error marker wrapping children.
func Error(children ...*Node) *Node {
	return &Node{kind: "ERROR", named: true, isError: true, children: children}
}

// Build lays out the tree, assigning byte offsets and positions, and returns
// the root with the matching source text. Leaves are separated by a single
// space; a leaf whose text is "\n" starts a new row.
func Build(root *Node) (syntax.Node, []byte) {
	var sb strings.Builder
	var row, col uint
	var layout func(n *Node, parent *Node)
	layout = func(n *Node, parent *Node) {
		n.parent = parent
		if len(n.children) == 0 {
			if sb.Len() > 0 && n.text != "\n" {
				sb.WriteByte(' ')
				col++
			}
			n.start = uint(sb.Len())
			n.startPos = syntax.Point{Row: row, Column: col}
			sb.WriteString(n.text)
			for _, r := range n.text {
				if r == '\n' {
					row++
					col = 0
				} else {
					col++
				}
			}
			n.end = uint(sb.Len())
			n.endPos = syntax.Point{Row: row, Column: col}
			return
		}
		for _, child := range n.children {
			layout(child, n)
		}
		first, last := n.children[0], n.children[len(n.children)-1]
		n.start, n.startPos = first.start, first.startPos
		n.end, n.endPos = last.end, last.endPos
	}
	layout(root, nil)
	return root, []byte(sb.String())
}

func (n *Node) Kind() string { return n.kind }

func (n *Node) StartByte() uint { return n.start }

func (n *Node) EndByte() uint { return n.end }

func (n *Node) StartPosition() syntax.Point { return n.startPos }

func (n *Node) EndPosition() syntax.Point { return n.endPos }

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Child(i int) syntax.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) IsNamed() bool { return n.named }

func (n *Node) IsError() bool { return n.isError }
