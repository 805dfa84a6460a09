package outline

import (
	"encoding/json"

	"github.com/mvp-joe/code-outline/internal/syntax"
	"github.com/mvp-joe/code-outline/internal/treeutil"
	"gopkg.in/yaml.v3"
)

// Position is a 0-indexed row/column pair.
type Position struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// Line returns the 1-indexed line number of the position.
func (p Position) Line() int { return p.Row + 1 }

func positionOf(p syntax.Point) Position {
	return Position{Row: int(p.Row), Column: int(p.Column)}
}

// Node is one retained syntactic construct in an outline.
//
// Children distinguishes three states: nil (a leaf), empty but non-nil (an
// explicit structural marker with nothing retained inside), and non-empty.
// Nodes are built append-only by the Extractor and treated as frozen after.
type Node struct {
	Type     string
	Name     string
	File     string
	Start    Position
	End      Position
	Children []*Node
}

// Named reports whether a name was extracted for the node.
func (n *Node) Named() bool { return n.Name != "" }

// Branches implements treeutil.Node.
func (n *Node) Branches() []*Node { return n.Children }

// Graft implements treeutil.Grafter. It assigns children to n and returns n,
// so it is only meant for freshly built copies such as those made by Clone.
func (n *Node) Graft(children []*Node) *Node {
	n.Children = children
	return n
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return treeutil.Map(n, func(src *Node) *Node {
		return &Node{Type: src.Type, Name: src.Name, File: src.File, Start: src.Start, End: src.End}
	})
}

// wireNode is the serialized shape. A pointer to the children slice keeps
// the leaf and explicit-empty states apart under omitempty.
type wireNode struct {
	Type     string   `json:"type" yaml:"type"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	File     string   `json:"file,omitempty" yaml:"file,omitempty"`
	Start    Position `json:"start" yaml:"start"`
	End      Position `json:"end" yaml:"end"`
	Children *[]*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) toWire() wireNode {
	w := wireNode{Type: n.Type, Name: n.Name, File: n.File, Start: n.Start, End: n.End}
	if n.Children != nil {
		children := n.Children
		w.Children = &children
	}
	return w
}

func (n *Node) fromWire(w wireNode) {
	*n = Node{Type: w.Type, Name: w.Name, File: w.File, Start: w.Start, End: w.End}
	if w.Children != nil {
		n.Children = *w.Children
		if n.Children == nil {
			n.Children = []*Node{}
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.fromWire(w)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var w wireNode
	if err := value.Decode(&w); err != nil {
		return err
	}
	n.fromWire(w)
	return nil
}
