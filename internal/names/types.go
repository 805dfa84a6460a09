package names

import "github.com/mvp-joe/code-outline/internal/syntax"

// TypeDeclarations names enums, type aliases, namespaces and modules.
func TypeDeclarations() Strategy {
	return Strategy{
		Name: "types",
		Rules: map[string]Rule{
			// TypeScript / JavaScript, Java and PHP share enum_declaration
			"enum_declaration":       byIdentifier,
			"type_alias_declaration": byIdentifier,
			"internal_module":        byIdentifier,
			"ambient_declaration":    ambient,

			// TypeScript `declare module "x"`, Ruby modules, Python roots
			"module": module,

			// Rust
			"enum_item": byIdentifier,
			"type_item": byIdentifier,
			"mod_item":  byIdentifier,

			// C
			"enum_specifier":  byKinds("type_identifier"),
			"type_definition": typeDefinition,

			// PHP
			"namespace_definition": byKinds("namespace_name"),
		},
	}
}

// ambient names a `declare ...` statement after what it declares.
func ambient(node syntax.Node, source []byte, reg *Registry) string {
	for _, child := range syntax.Children(node) {
		if !child.IsNamed() {
			continue
		}
		if name := reg.Name(child, source); name != "" {
			return name
		}
	}
	if syntax.FirstChildOfKind(node, "statement_block") != nil {
		return "global"
	}
	return ""
}

// module names a TypeScript ambient module after its quoted specifier and a
// Ruby module after its constant. A Python file root has neither.
func module(node syntax.Node, source []byte, _ *Registry) string {
	for _, child := range syntax.Children(node) {
		switch child.Kind() {
		case "string":
			return unquote(syntax.Text(child, source))
		case "identifier", "nested_identifier", "constant", "scope_resolution":
			return syntax.Text(child, source)
		}
		if child.IsNamed() {
			// Python roots start straight away with statements.
			return ""
		}
	}
	return ""
}

// typeDefinition names a C typedef after its declared type name.
func typeDefinition(node syntax.Node, source []byte, _ *Registry) string {
	for i := node.ChildCount() - 1; i >= 0; i-- {
		child := node.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if name := declaratorName(child, source, true); name != "" {
			return name
		}
	}
	return ""
}
