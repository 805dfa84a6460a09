package names

import (
	"strings"

	"github.com/mvp-joe/code-outline/internal/syntax"
)

// Modules names import and export statements.
func Modules() Strategy {
	return Strategy{
		Name: "modules",
		Rules: map[string]Rule{
			// TypeScript / JavaScript and Python share import_statement
			"import_statement": importStatement,
			"export_statement": exportStatement,

			// Python
			"import_from_statement": importFrom,

			// Rust
			"use_declaration": useDeclaration,

			// Java
			"import_declaration": importDeclaration,

			// C
			"preproc_include": include,

			// PHP
			"namespace_use_declaration": byKindsJoined("namespace_use_clause"),
		},
	}
}

// importStatement prefers the imported identifiers and falls back to the
// module specifier for side-effect imports.
func importStatement(node syntax.Node, source []byte, _ *Registry) string {
	if clause := syntax.FirstChildOfKind(node, "import_clause"); clause != nil {
		if names := importClause(clause, source); names != "" {
			return names
		}
	}
	if spec := syntax.FirstChildOfKind(node, "string"); spec != nil {
		return unquote(syntax.Text(spec, source))
	}
	// Python: import a.b, c as d
	return joinTexts(node, source, "dotted_name", "aliased_import")
}

// importClause lists the local bindings an ES import introduces.
func importClause(clause syntax.Node, source []byte) string {
	var parts []string
	for _, child := range syntax.Children(clause) {
		switch child.Kind() {
		case "identifier":
			parts = append(parts, syntax.Text(child, source))
		case "namespace_import":
			parts = append(parts, "* as "+firstOf(child, source, "identifier"))
		case "named_imports":
			for _, spec := range syntax.ChildrenOfKind(child, "import_specifier") {
				idents := syntax.ChildrenOfKind(spec, "identifier")
				if len(idents) == 0 {
					continue
				}
				// The alias, when present, is the last identifier.
				parts = append(parts, syntax.Text(idents[len(idents)-1], source))
			}
		}
	}
	return strings.Join(parts, ", ")
}

// exportStatement prefers an explicit export clause, then the exported
// declaration's own name, then the default-export marker.
func exportStatement(node syntax.Node, source []byte, reg *Registry) string {
	if clause := syntax.FirstChildOfKind(node, "export_clause"); clause != nil {
		return syntax.Text(clause, source)
	}

	var isDefault, isStar bool
	var spec syntax.Node
	for _, child := range syntax.Children(node) {
		if !child.IsNamed() {
			switch child.Kind() {
			case "default":
				isDefault = true
			case "*":
				isStar = true
			}
			continue
		}
		switch child.Kind() {
		case "string":
			spec = child
		case "decorator", "comment":
		case "identifier":
			if isDefault {
				return syntax.Text(child, source)
			}
		case "namespace_export":
			if from := syntax.FirstChildOfKind(node, "string"); from != nil {
				return syntax.Text(child, source) + " from " + unquote(syntax.Text(from, source))
			}
		default:
			if name := reg.Name(child, source); name != "" {
				return name
			}
		}
	}

	switch {
	case isStar && spec != nil:
		return "* from " + unquote(syntax.Text(spec, source))
	case isDefault:
		return "default"
	}
	return ""
}

// importFrom prefers the imported names over the module path.
func importFrom(node syntax.Node, source []byte, _ *Registry) string {
	var module string
	var parts []string
	for _, child := range syntax.Children(node) {
		switch child.Kind() {
		case "dotted_name", "relative_import":
			if module == "" {
				module = syntax.Text(child, source)
				continue
			}
			parts = append(parts, syntax.Text(child, source))
		case "aliased_import", "wildcard_import":
			parts = append(parts, syntax.Text(child, source))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return module
}

// useDeclaration names a Rust use after its path.
func useDeclaration(node syntax.Node, source []byte, _ *Registry) string {
	for _, child := range syntax.Children(node) {
		if child.IsNamed() && child.Kind() != "visibility_modifier" {
			return syntax.Text(child, source)
		}
	}
	return ""
}

// importDeclaration names a Java import after its qualified name.
func importDeclaration(node syntax.Node, source []byte, _ *Registry) string {
	name := firstOf(node, source, "scoped_identifier", "identifier")
	if syntax.FirstChildOfKind(node, "asterisk") != nil {
		name += ".*"
	}
	return name
}

// include names a C include after the included path.
func include(node syntax.Node, source []byte, _ *Registry) string {
	return unquote(firstOf(node, source, "string_literal", "system_lib_string", "identifier"))
}

// byKindsJoined joins the raw text of every direct child of kind.
func byKindsJoined(kind string) Rule {
	return func(node syntax.Node, source []byte, _ *Registry) string {
		return joinTexts(node, source, kind)
	}
}
