package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/code-outline/internal/outline"
)

const (
	compressedHeader = "[outline:compressed]"
	compressedFooter = "[/outline]"
	compressedUsage  = "# @file; one node per line: <type>[_<name>] <line>; leading spaces = depth; lines 1-indexed; ~N and type aliases below"
	indentMarker     = " "
)

// renderCompressed emits the batch in its smallest locatable form. Alias
// tables are computed once over the whole batch.
func renderCompressed(results []outline.FileResult, _ Options) (string, error) {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, r.File)
	}
	pathAliases := newPathLegend(paths)
	typeAliases := newTypeLegend(results)

	var sb strings.Builder
	sb.WriteString(compressedHeader)
	sb.WriteString("\n")
	sb.WriteString(compressedUsage)
	sb.WriteString("\n")
	pathAliases.writeTo(&sb)
	typeAliases.writeTo(&sb)

	for _, r := range results {
		sb.WriteString("@")
		sb.WriteString(pathAliases.heading(r.File))
		sb.WriteString("\n")
		for _, n := range compressedRoots(r.Outline) {
			writeCompressedNode(&sb, n, 0, typeAliases)
		}
	}

	sb.WriteString(compressedFooter)
	sb.WriteString("\n")
	return sb.String(), nil
}

// compressedRoots drops an unnamed file root; the file heading stands in for
// it and its children start at depth 0.
func compressedRoots(root *outline.Node) []*outline.Node {
	if root == nil {
		return nil
	}
	if root.Named() {
		return []*outline.Node{root}
	}
	return root.Children
}

func writeCompressedNode(sb *strings.Builder, n *outline.Node, depth int, types *typeLegend) {
	sb.WriteString(strings.Repeat(indentMarker, depth))
	sb.WriteString(types.alias(n.Type))
	if n.Named() {
		sb.WriteString("_")
		sb.WriteString(singleLine(n.Name))
	}
	fmt.Fprintf(sb, " %d\n", n.Start.Line())
	for _, child := range n.Children {
		writeCompressedNode(sb, child, depth+1, types)
	}
}

// pathLegend maps directory prefixes to ~N aliases.
type pathLegend struct {
	prefixes []string      // chosen prefixes in alias order, with trailing slash
	assigned map[string]int // path -> index into prefixes
}

// newPathLegend greedily picks the directory prefix that saves the most bytes
// across the paths no alias covers yet, until no prefix shared by at least two
// such paths pays for its own legend line.
func newPathLegend(paths []string) *pathLegend {
	l := &pathLegend{assigned: make(map[string]int)}

	var distinct []string
	seen := make(map[string]bool)
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			distinct = append(distinct, p)
		}
	}
	candidates := dirPrefixes(distinct)

	for {
		token := aliasToken(len(l.prefixes))
		best, bestSaving := "", 0
		for _, prefix := range candidates {
			count := 0
			for _, p := range distinct {
				if _, done := l.assigned[p]; !done && strings.HasPrefix(p, prefix) {
					count++
				}
			}
			if count < 2 {
				continue
			}
			// Each heading trades prefix (minus its slash) for the token; the
			// legend line costs "token=prefix\n".
			saving := count*(len(prefix)-1-len(token)) - (len(token) + 1 + len(prefix) - 1 + 1)
			if saving > bestSaving {
				best, bestSaving = prefix, saving
			}
		}
		if best == "" {
			return l
		}
		idx := len(l.prefixes)
		l.prefixes = append(l.prefixes, best)
		for _, p := range distinct {
			if _, done := l.assigned[p]; !done && strings.HasPrefix(p, best) {
				l.assigned[p] = idx
			}
		}
	}
}

// dirPrefixes lists every directory prefix of paths, each ending in "/", in
// first-seen order.
func dirPrefixes(paths []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range paths {
		for i := 0; i < len(p); i++ {
			if p[i] != '/' || i == 0 {
				continue
			}
			prefix := p[:i+1]
			if !seen[prefix] {
				seen[prefix] = true
				out = append(out, prefix)
			}
		}
	}
	return out
}

func aliasToken(i int) string {
	return fmt.Sprintf("~%d", i+1)
}

// heading rewrites path with its alias, or returns it unchanged.
func (l *pathLegend) heading(path string) string {
	idx, ok := l.assigned[path]
	if !ok {
		return path
	}
	prefix := l.prefixes[idx]
	return aliasToken(idx) + "/" + path[len(prefix):]
}

func (l *pathLegend) writeTo(sb *strings.Builder) {
	for i, prefix := range l.prefixes {
		fmt.Fprintf(sb, "%s=%s\n", aliasToken(i), strings.TrimSuffix(prefix, "/"))
	}
}

// typeLegend maps every type tag in the batch to a short uppercase alias,
// most frequent first. Aliasing every tag keeps "<alias>_<name>" unambiguous.
type typeLegend struct {
	order   []string
	aliases map[string]string
}

func newTypeLegend(results []outline.FileResult) *typeLegend {
	counts := make(map[string]int)
	var firstSeen []string
	var tally func(n *outline.Node)
	tally = func(n *outline.Node) {
		if counts[n.Type] == 0 {
			firstSeen = append(firstSeen, n.Type)
		}
		counts[n.Type]++
		for _, child := range n.Children {
			tally(child)
		}
	}
	for _, r := range results {
		for _, n := range compressedRoots(r.Outline) {
			tally(n)
		}
	}

	order := make([]string, len(firstSeen))
	copy(order, firstSeen)
	// Stable insertion sort by descending count keeps first-seen order on ties.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && counts[order[j]] > counts[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	l := &typeLegend{order: order, aliases: make(map[string]string, len(order))}
	next := 0
	for _, tag := range order {
		alias := letters(next)
		for counts[alias] > 0 {
			next++
			alias = letters(next)
		}
		next++
		l.aliases[tag] = alias
	}
	return l
}

// letters returns the i-th alias in the sequence A..Z, AA..ZZ, AAA...
func letters(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}

func (l *typeLegend) alias(tag string) string {
	if a, ok := l.aliases[tag]; ok {
		return a
	}
	return tag
}

func (l *typeLegend) writeTo(sb *strings.Builder) {
	for _, tag := range l.order {
		fmt.Fprintf(sb, "%s=%s\n", l.aliases[tag], tag)
	}
}
