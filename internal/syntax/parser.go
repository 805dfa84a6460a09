package syntax

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

var (
	// ErrUnsupportedLanguage indicates a file whose extension has no grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrParseFailed indicates tree-sitter could not produce a tree.
	ErrParseFailed = errors.New("parse failed")
)

// Tree is a parsed source file. Close releases the underlying C memory; the
// Root node and anything reached from it must not be used afterwards.
type Tree struct {
	tree     *sitter.Tree
	Source   []byte
	Language *Language
}

// Root returns the tree's root node.
func (t *Tree) Root() Node {
	return Wrap(t.tree.RootNode())
}

// Close releases the tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Parse parses source with the grammar of lang. A fresh parser is created
// per call so concurrent callers never share parser state.
func Parse(ctx context.Context, lang *Language, source []byte) (*Tree, error) {
	if lang == nil {
		return nil, ErrUnsupportedLanguage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang.grammar); err != nil {
		return nil, fmt.Errorf("failed to load %s grammar: %w", lang.Name, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, lang.Name)
	}

	return &Tree{tree: tree, Source: source, Language: lang}, nil
}

// ParseFile detects the language of path and parses source with it.
func (l *Languages) ParseFile(ctx context.Context, path string, source []byte) (*Tree, error) {
	lang, ok := l.Detect(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}
	return Parse(ctx, lang, source)
}
