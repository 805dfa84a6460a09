package names

import (
	"strings"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// calleeKinds are the callee shapes that name a call site. Anything else,
// such as an immediately invoked function expression, leaves the call
// unnamed.
var calleeKinds = map[string]bool{
	"identifier":          true,
	"member_expression":   true,
	"attribute":           true,
	"scoped_identifier":   true,
	"field_expression":    true,
	"nested_identifier":   true,
	"property_identifier": true,
}

// Bindings names variables, properties, fields and call sites.
func Bindings() Strategy {
	return Strategy{
		Name: "bindings",
		Rules: map[string]Rule{
			// TypeScript / JavaScript and Java share variable_declarator
			"variable_declarator":     variableDeclarator,
			"lexical_declaration":     groupedDeclaration,
			"variable_declaration":    groupedDeclaration,
			"public_field_definition": byIdentifier,
			"field_definition":        byIdentifier,
			"property_signature":      byIdentifier,
			"pair":                    pair,
			"call_expression":         call,

			// Python
			"call":                 call,
			"assignment":           assignment,
			"decorated_definition": decorated,

			// Rust
			"let_declaration": byIdentifier,
			"const_item":      byIdentifier,
			"static_item":     byIdentifier,

			// Java, C and Rust share field_declaration
			"field_declaration":          fieldDeclaration,
			"local_variable_declaration": fieldDeclaration,

			// C
			"declaration": declaration,

			// PHP
			"property_declaration": nested("property_element", "variable_name"),
			"const_declaration":    nested("const_element", "name"),
		},
	}
}

// variableDeclarator names a single binding. Destructuring patterns have no
// single name, so their raw text stands in.
func variableDeclarator(node syntax.Node, source []byte, _ *Registry) string {
	for _, child := range syntax.Children(node) {
		if !child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "identifier", "object_pattern", "array_pattern":
			return syntax.Text(child, source)
		}
		return firstIdentifier(node, source)
	}
	return ""
}

// groupedDeclaration names `const a = 1, b = 2` as "const a, b".
func groupedDeclaration(node syntax.Node, source []byte, reg *Registry) string {
	joined := joinNames(node, source, reg, "variable_declarator")
	if joined == "" {
		return ""
	}
	keyword := ""
	if first := node.Child(0); first != nil && !first.IsNamed() {
		keyword = syntax.Text(first, source)
	}
	if keyword == "" {
		return joined
	}
	return keyword + " " + joined
}

// pair names an object literal entry after its key.
func pair(node syntax.Node, source []byte, _ *Registry) string {
	if node.ChildCount() == 0 {
		return ""
	}
	return unquote(syntax.Text(node.Child(0), source))
}

// call names a call site "<callee>()" to tell it apart from a declaration.
func call(node syntax.Node, source []byte, _ *Registry) string {
	if node.ChildCount() == 0 {
		return ""
	}
	callee := node.Child(0)
	if callee == nil || !calleeKinds[callee.Kind()] {
		return ""
	}
	return compact(syntax.Text(callee, source)) + "()"
}

// assignment names a Python assignment after its target.
func assignment(node syntax.Node, source []byte, _ *Registry) string {
	if node.ChildCount() == 0 {
		return ""
	}
	target := node.Child(0)
	switch target.Kind() {
	case "identifier", "attribute", "pattern_list", "tuple_pattern":
		return syntax.Text(target, source)
	}
	return ""
}

// decorated names a decorated Python definition after the definition.
func decorated(node syntax.Node, source []byte, reg *Registry) string {
	def := syntax.FirstChildOfKind(node, "function_definition", "class_definition")
	return reg.Name(def, source)
}

// fieldDeclaration names Java fields after their declarators and C or Rust
// fields after their field identifier.
func fieldDeclaration(node syntax.Node, source []byte, reg *Registry) string {
	if joined := joinNames(node, source, reg, "variable_declarator"); joined != "" {
		return joined
	}
	return firstDeclarator(node, source)
}

// declaration names a C declaration after its declarators.
func declaration(node syntax.Node, source []byte, _ *Registry) string {
	var parts []string
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !declaratorKinds[child.Kind()] {
			continue
		}
		if name := declaratorName(child, source, false); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

// nested names a node after the first grandchild of kind inner found under a
// child of kind outer.
func nested(outer, inner string) Rule {
	return func(node syntax.Node, source []byte, _ *Registry) string {
		var parts []string
		for _, child := range syntax.ChildrenOfKind(node, outer) {
			if name := firstOf(child, source, inner); name != "" {
				parts = append(parts, name)
			}
		}
		return strings.Join(parts, ", ")
	}
}

// compact collapses runs of whitespace to single spaces so multi-line
// callees read on one line.
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
