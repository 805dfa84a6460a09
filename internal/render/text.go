package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/code-outline/internal/outline"
)

const (
	branchGlyph = "├── "
	lastGlyph   = "└── "
	pipeGlyph   = "│   "
	spaceGlyph  = "    "
)

// renderText draws each outline as a tree under its file path, with a blank
// line between files. Positions print as line:column with 1-indexed lines.
func renderText(results []outline.FileResult, opts Options) (string, error) {
	var sb strings.Builder
	for i, r := range prepare(results, opts) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.File)
		sb.WriteString("\n")
		writeTextNode(&sb, r.Outline, "", lastGlyph)
	}
	return sb.String(), nil
}

func writeTextNode(sb *strings.Builder, n *outline.Node, prefix, glyph string) {
	sb.WriteString(prefix)
	sb.WriteString(glyph)
	sb.WriteString(textLabel(n))
	sb.WriteString("\n")

	childPrefix := prefix + spaceGlyph
	if glyph == branchGlyph {
		childPrefix = prefix + pipeGlyph
	}
	for i, child := range n.Children {
		g := branchGlyph
		if i == len(n.Children)-1 {
			g = lastGlyph
		}
		writeTextNode(sb, child, childPrefix, g)
	}
}

func textLabel(n *outline.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Type)
	if n.Named() {
		sb.WriteString(" ")
		sb.WriteString(singleLine(n.Name))
	}
	fmt.Fprintf(&sb, " [%d:%d-%d:%d]", n.Start.Line(), n.Start.Column, n.End.Line(), n.End.Column)
	if n.File != "" {
		fmt.Fprintf(&sb, " %s:%d", n.File, n.Start.Line())
	}
	if n.Children != nil && len(n.Children) == 0 {
		sb.WriteString(" {}")
	}
	return sb.String()
}

// singleLine collapses whitespace runs so a name never breaks a line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
