package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/mvp-joe/code-outline/internal/outline"
)

// renderDOT draws the batch as a Graphviz digraph: one box per file and one
// vertex per outline node, with edges from parent to child. Statement order
// in the output is not stable; only the graph is.
func renderDOT(results []outline.FileResult, opts Options) (string, error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for i, r := range prepare(results, opts) {
		fileID := fmt.Sprintf("f%d", i)
		if err := g.AddVertex(fileID,
			graph.VertexAttribute("label", dotEscape(r.File)),
			graph.VertexAttribute("shape", "box"),
		); err != nil {
			return "", fmt.Errorf("failed to add file %s: %w", r.File, err)
		}

		seq := 0
		var add func(n *outline.Node, parent string) error
		add = func(n *outline.Node, parent string) error {
			id := fmt.Sprintf("%s_n%d", fileID, seq)
			seq++
			if err := g.AddVertex(id, graph.VertexAttribute("label", dotEscape(dotLabel(n)))); err != nil {
				return err
			}
			if err := g.AddEdge(parent, id); err != nil {
				return err
			}
			for _, child := range n.Children {
				if err := add(child, id); err != nil {
					return err
				}
			}
			return nil
		}
		if err := add(r.Outline, fileID); err != nil {
			return "", fmt.Errorf("failed to build graph for %s: %w", r.File, err)
		}
	}

	var buf bytes.Buffer
	if err := draw.DOT(g, &buf); err != nil {
		return "", fmt.Errorf("failed to draw graph: %w", err)
	}
	return buf.String(), nil
}

func dotLabel(n *outline.Node) string {
	label := n.Type
	if n.Named() {
		label += " " + singleLine(n.Name)
	}
	return fmt.Sprintf("%s :%d", label, n.Start.Line())
}

var dotReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}
