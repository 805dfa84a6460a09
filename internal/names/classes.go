package names

import "github.com/mvp-joe/code-outline/internal/syntax"

// Classes names classes, interfaces, structs and traits.
func Classes() Strategy {
	return Strategy{
		Name: "classes",
		Rules: map[string]Rule{
			// TypeScript / JavaScript, Java and PHP share these tags
			"class_declaration":          byIdentifier,
			"abstract_class_declaration": byIdentifier,
			"interface_declaration":      byIdentifier,
			"class":                      byIdentifier,

			// Python
			"class_definition": byIdentifier,

			// Rust
			"struct_item": byIdentifier,
			"union_item":  byIdentifier,
			"trait_item":  byIdentifier,
			"impl_item":   implItem,

			// Java
			"record_declaration": byIdentifier,

			// PHP
			"trait_declaration": byIdentifier,

			// C
			"struct_specifier": byKinds("type_identifier"),
			"union_specifier":  byKinds("type_identifier"),
		},
	}
}

// implItem names a Rust impl block after everything between the impl
// keyword and its body, e.g. "Display for Point".
func implItem(node syntax.Node, source []byte, _ *Registry) string {
	if node.ChildCount() == 0 {
		return ""
	}
	keyword := node.Child(0)
	body := syntax.FirstChildOfKind(node, "declaration_list")
	if body == nil {
		return syntax.Text(keyword, source)
	}
	return between(keyword, body, source)
}
