package outline

import "fmt"

// Classification holds the type-tag sets that drive filtering. Build it once
// at startup; it is read-only afterwards.
type Classification struct {
	container     map[string]struct{}
	structural    map[string]struct{}
	insignificant map[string]struct{}
}

// NewClassification builds a classification from explicit tag lists.
// Structural tags are always containers too. A tag may not be both
// insignificant and container or structural.
func NewClassification(container, structural, insignificant []string) (*Classification, error) {
	c := &Classification{
		container:     toSet(container),
		structural:    toSet(structural),
		insignificant: toSet(insignificant),
	}
	for tag := range c.structural {
		c.container[tag] = struct{}{}
	}
	for tag := range c.insignificant {
		if _, ok := c.container[tag]; ok {
			return nil, fmt.Errorf("type %q cannot be both insignificant and a container", tag)
		}
	}
	return c, nil
}

// DefaultClassification returns the sets for every shipped grammar.
func DefaultClassification() *Classification {
	c, err := NewClassification(containerTypes, structuralTypes, insignificantTypes)
	if err != nil {
		panic(err)
	}
	return c
}

// IsContainer reports whether nodes of this type may be descended into.
func (c *Classification) IsContainer(tag string) bool {
	_, ok := c.container[tag]
	return ok
}

// IsStructural reports whether unnamed nodes of this type are kept as
// placeholders in named-only mode.
func (c *Classification) IsStructural(tag string) bool {
	_, ok := c.structural[tag]
	return ok
}

// IsInsignificant reports whether nodes of this type are always skipped.
func (c *Classification) IsInsignificant(tag string) bool {
	_, ok := c.insignificant[tag]
	return ok
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

// structuralTypes give an outline its shape even when unnamed: file roots and
// the bodies of classes, interfaces, enums and object literals.
var structuralTypes = []string{
	// roots
	"program",          // TypeScript / JavaScript / Ruby / Java / PHP
	"module",           // Python root, TypeScript `declare module "x"`
	"source_file",      // Rust
	"translation_unit", // C

	// TypeScript / JavaScript
	"class_body",
	"interface_body",
	"object_type",
	"enum_body",
	"object",

	// Rust / C / PHP / Java
	"declaration_list",
	"field_declaration_list",
	"enum_variant_list",
	"enumerator_list",
	"enum_body_declarations",
}

// containerTypes may hold named constructs worth descending into. Statements
// and expressions are listed so all-nodes mode reaches everything named-only
// mode can surface.
var containerTypes = []string{
	// TypeScript / JavaScript declarations
	"class_declaration",
	"abstract_class_declaration",
	"class",
	"interface_declaration",
	"enum_declaration",
	"internal_module",
	"ambient_declaration",
	"export_statement",
	"function_declaration",
	"generator_function_declaration",
	"function_expression",
	"function",
	"generator_function",
	"arrow_function",
	"method_definition",
	"public_field_definition",
	"field_definition",
	"lexical_declaration",
	"variable_declaration",
	"variable_declarator",
	"pair",
	"decorator",

	// TypeScript / JavaScript statements and expressions
	"statement_block",
	"expression_statement",
	"return_statement",
	"if_statement",
	"else_clause",
	"for_statement",
	"for_in_statement",
	"while_statement",
	"do_statement",
	"try_statement",
	"catch_clause",
	"finally_clause",
	"switch_statement",
	"switch_body",
	"switch_case",
	"switch_default",
	"labeled_statement",
	"call_expression",
	"new_expression",
	"arguments",
	"parenthesized_expression",
	"assignment_expression",
	"await_expression",
	"ternary_expression",
	"unary_expression",
	"binary_expression",
	"sequence_expression",
	"as_expression",
	"satisfies_expression",
	"non_null_expression",
	"spread_element",
	"yield_expression",
	"array",
	"jsx_expression",

	// Python
	"class_definition",
	"function_definition",
	"decorated_definition",
	"block",
	"elif_clause",
	"with_statement",
	"except_clause",
	"match_statement",
	"case_clause",
	"assignment",
	"call",
	"argument_list", // Python and Java

	// Rust
	"mod_item",
	"impl_item",
	"trait_item",
	"function_item",
	"struct_item",
	"enum_item",
	"let_declaration",
	"macro_invocation",
	"if_expression",
	"match_expression",
	"match_block",
	"match_arm",
	"closure_expression",

	// Java
	"record_declaration",
	"method_declaration",
	"constructor_declaration",
	"constructor_body",
	"method_invocation",
	"object_creation_expression",
	"lambda_expression",

	// C
	"compound_statement",
	"struct_specifier",
	"union_specifier",
	"enum_specifier",
	"linkage_specification",

	// PHP
	"namespace_definition",
	"trait_declaration",

	// Ruby
	"method",
	"singleton_method",
	"singleton_class",
	"body_statement",
	"do_block",
}

// insignificantTypes are always skipped. Anonymous tokens (keywords and most
// punctuation) are skipped regardless of this list.
var insignificantTypes = []string{
	"comment",
	"line_comment",
	"block_comment",
	"html_comment",
	"hash_bang_line",
	"empty_statement",
	"escape_sequence",
	"ERROR",
	";", ",", ".", ":", "::", "=", "=>", "->",
	"(", ")", "{", "}", "[", "]", "<", ">",
}
