package syntax

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language pairs a grammar with the file extensions it handles.
type Language struct {
	Name       string
	Extensions []string
	grammar    *sitter.Language
}

// Languages maps file extensions to grammars. Build one with NewLanguages
// at startup; it is read-only afterwards and safe for concurrent use.
type Languages struct {
	byName      map[string]*Language
	byExtension map[string]*Language
}

// NewLanguages builds the table of every grammar the tool ships with.
// JavaScript is parsed with the TSX grammar, which accepts plain JavaScript
// and JSX alike.
func NewLanguages() *Languages {
	tsx := sitter.NewLanguage(typescript.LanguageTSX())
	langs := []*Language{
		{Name: "typescript", Extensions: []string{".ts", ".mts", ".cts"}, grammar: sitter.NewLanguage(typescript.LanguageTypescript())},
		{Name: "tsx", Extensions: []string{".tsx"}, grammar: tsx},
		{Name: "javascript", Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}, grammar: tsx},
		{Name: "python", Extensions: []string{".py", ".pyi"}, grammar: sitter.NewLanguage(python.Language())},
		{Name: "rust", Extensions: []string{".rs"}, grammar: sitter.NewLanguage(rust.Language())},
		{Name: "java", Extensions: []string{".java"}, grammar: sitter.NewLanguage(java.Language())},
		{Name: "c", Extensions: []string{".c", ".h"}, grammar: sitter.NewLanguage(c.Language())},
		{Name: "php", Extensions: []string{".php"}, grammar: sitter.NewLanguage(php.LanguagePHP())},
		{Name: "ruby", Extensions: []string{".rb"}, grammar: sitter.NewLanguage(ruby.Language())},
	}

	table := &Languages{
		byName:      make(map[string]*Language, len(langs)),
		byExtension: make(map[string]*Language),
	}
	for _, lang := range langs {
		table.byName[lang.Name] = lang
		for _, ext := range lang.Extensions {
			table.byExtension[ext] = lang
		}
	}
	return table
}

// Detect returns the language for a file path based on its extension.
func (l *Languages) Detect(path string) (*Language, bool) {
	lang, ok := l.byExtension[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ByName returns the language registered under name.
func (l *Languages) ByName(name string) (*Language, bool) {
	lang, ok := l.byName[name]
	return lang, ok
}

// Extensions returns every supported extension, sorted.
func (l *Languages) Extensions() []string {
	exts := make([]string, 0, len(l.byExtension))
	for ext := range l.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// All returns the languages sorted by name.
func (l *Languages) All() []*Language {
	all := make([]*Language, 0, len(l.byName))
	for _, lang := range l.byName {
		all = append(all, lang)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
