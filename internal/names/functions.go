package names

import "github.com/mvp-joe/code-outline/internal/syntax"

// Functions names functions, methods and their signatures.
func Functions() Strategy {
	return Strategy{
		Name: "functions",
		Rules: map[string]Rule{
			// TypeScript / JavaScript
			"function_declaration":           byIdentifier,
			"generator_function_declaration": byIdentifier,
			"function_expression":            byIdentifier,
			"function":                       byIdentifier,
			"generator_function":             byIdentifier,
			"function_signature":             byIdentifier,
			"method_definition":              byIdentifier,
			"method_signature":               byIdentifier,
			"abstract_method_signature":      byIdentifier,

			// Python, C and PHP share the tag
			"function_definition": functionDefinition,

			// Rust
			"function_item":           byIdentifier,
			"function_signature_item": byIdentifier,

			// Java and PHP; the return type precedes the name in Java
			"method_declaration":      byKinds("identifier", "name"),
			"constructor_declaration": byKinds("identifier", "name"),

			// Ruby
			"method":           byIdentifier,
			"singleton_method": byKinds("identifier", "constant"),
		},
	}
}

// functionDefinition handles C, where the name sits inside a declarator, as
// well as Python and PHP, where it is a direct child.
func functionDefinition(node syntax.Node, source []byte, _ *Registry) string {
	if name := firstDeclarator(node, source); name != "" {
		return name
	}
	return firstOf(node, source, "identifier", "name")
}
