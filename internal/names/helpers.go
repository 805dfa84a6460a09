package names

import (
	"strings"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// identifierKinds are the child types that can carry a declaration's name.
var identifierKinds = map[string]bool{
	"identifier":                    true,
	"type_identifier":               true,
	"property_identifier":           true,
	"private_property_identifier":   true,
	"field_identifier":              true,
	"shorthand_property_identifier": true,
	"nested_identifier":             true,
	"computed_property_name":        true,
	"name":                          true,
	"constant":                      true,
	"scope_resolution":              true,
}

// declaratorKinds are C-family declarator shapes that wrap a name.
var declaratorKinds = map[string]bool{
	"identifier":               true,
	"field_identifier":         true,
	"init_declarator":          true,
	"function_declarator":      true,
	"pointer_declarator":       true,
	"array_declarator":         true,
	"parenthesized_declarator": true,
}

// firstIdentifier returns the text of the first identifier-shaped direct child.
func firstIdentifier(node syntax.Node, source []byte) string {
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && identifierKinds[child.Kind()] {
			return syntax.Text(child, source)
		}
	}
	return ""
}

// firstOf returns the text of the first direct child with one of kinds.
func firstOf(node syntax.Node, source []byte, kinds ...string) string {
	return syntax.Text(syntax.FirstChildOfKind(node, kinds...), source)
}

// byIdentifier names a node after its first identifier-shaped child.
func byIdentifier(node syntax.Node, source []byte, _ *Registry) string {
	return firstIdentifier(node, source)
}

// byKinds names a node after its first direct child with one of kinds.
func byKinds(kinds ...string) Rule {
	return func(node syntax.Node, source []byte, _ *Registry) string {
		return firstOf(node, source, kinds...)
	}
}

// declaratorName digs through C-style declarators to the declared name.
func declaratorName(node syntax.Node, source []byte, allowTypeName bool) string {
	if node == nil {
		return ""
	}
	switch kind := node.Kind(); {
	case kind == "identifier" || kind == "field_identifier":
		return syntax.Text(node, source)
	case kind == "type_identifier" && allowTypeName:
		return syntax.Text(node, source)
	case declaratorKinds[kind]:
		for i := 0; i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil || !child.IsNamed() {
				continue
			}
			if declaratorKinds[child.Kind()] || (allowTypeName && child.Kind() == "type_identifier") {
				return declaratorName(child, source, allowTypeName)
			}
		}
	}
	return ""
}

// firstDeclarator names a declaration after its first declarator child.
func firstDeclarator(node syntax.Node, source []byte) string {
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && declaratorKinds[child.Kind()] {
			if name := declaratorName(child, source, false); name != "" {
				return name
			}
		}
	}
	return ""
}

// joinNames names every child of kind through the registry and joins the
// non-empty results.
func joinNames(node syntax.Node, source []byte, reg *Registry, kind string) string {
	var parts []string
	for _, child := range syntax.ChildrenOfKind(node, kind) {
		if name := reg.Name(child, source); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

// joinTexts joins the raw text of every direct child with one of kinds.
func joinTexts(node syntax.Node, source []byte, kinds ...string) string {
	var parts []string
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		for _, kind := range kinds {
			if child.Kind() == kind {
				parts = append(parts, syntax.Text(child, source))
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}

// unquote strips matching quotes or angle brackets from a literal.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			return s[1 : len(s)-1]
		}
		if first == '<' && last == '>' {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// between returns the trimmed source text from the end of from to the start
// of to.
func between(from, to syntax.Node, source []byte) string {
	if from == nil || to == nil || from.EndByte() > to.StartByte() {
		return ""
	}
	return strings.TrimSpace(string(source[from.EndByte():to.StartByte()]))
}
