package syntax

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for syntax:
// - Detect maps extensions (case-insensitive) to languages
// - Detect rejects unknown extensions
// - ParseFile returns ErrUnsupportedLanguage for unknown extensions
// - Parse produces a root node with children, positions and text
// - Parse surfaces error markers through IsError
// - Parse honors an already-cancelled context
// - Every shipped language parses a trivial source file

func TestLanguages_Detect(t *testing.T) {
	t.Parallel()

	langs := NewLanguages()

	tests := []struct {
		path string
		want string
	}{
		{"src/app.ts", "typescript"},
		{"src/App.TSX", "tsx"},
		{"lib/index.mjs", "javascript"},
		{"tool.py", "python"},
		{"main.rs", "rust"},
		{"Main.java", "java"},
		{"util.h", "c"},
		{"index.php", "php"},
		{"app.rb", "ruby"},
	}
	for _, tt := range tests {
		lang, ok := langs.Detect(tt.path)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, lang.Name, tt.path)
	}

	_, ok := langs.Detect("README.md")
	assert.False(t, ok)
	assert.Contains(t, langs.Extensions(), ".ts")
	assert.Len(t, langs.All(), 9)
}

func TestParseFile_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	_, err := NewLanguages().ParseFile(context.Background(), "notes.txt", []byte("hello"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestParse_TypeScriptTree(t *testing.T) {
	t.Parallel()

	source := []byte("function greet(name: string) {\n  return name;\n}\n")
	tree, err := NewLanguages().ParseFile(context.Background(), "greet.ts", source)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, "program", root.Kind())
	assert.Nil(t, root.Parent())

	fn := FirstChildOfKind(root, "function_declaration")
	require.NotNil(t, fn)
	assert.True(t, fn.IsNamed())
	assert.False(t, fn.IsError())
	assert.Equal(t, Point{Row: 0, Column: 0}, fn.StartPosition())
	assert.Equal(t, uint(2), fn.EndPosition().Row)
	assert.Equal(t, "program", fn.Parent().Kind())

	ident := FirstChildOfKind(fn, "identifier")
	require.NotNil(t, ident)
	assert.Equal(t, "greet", Text(ident, source))

	// The "function" keyword is an anonymous token.
	keyword := fn.Child(0)
	require.NotNil(t, keyword)
	assert.False(t, keyword.IsNamed())
	assert.Nil(t, fn.Child(-1))
	assert.Nil(t, fn.Child(fn.ChildCount()))
}

func TestParse_ErrorMarkers(t *testing.T) {
	t.Parallel()

	source := []byte("function broken( {\n")
	tree, err := NewLanguages().ParseFile(context.Background(), "broken.ts", source)
	require.NoError(t, err)
	defer tree.Close()

	found := false
	Walk(tree.Root(), func(n Node) bool {
		if n.IsError() {
			found = true
		}
		return true
	})
	assert.True(t, found, "expected an error or missing node in a broken file")
}

func TestParse_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lang, ok := NewLanguages().ByName("typescript")
	require.True(t, ok)
	_, err := Parse(ctx, lang, []byte("let x = 1;"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_AllLanguages(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"a.ts":   "const x = 1;",
		"a.tsx":  "const el = <div />;",
		"a.js":   "function f() {}",
		"a.py":   "def f():\n    pass\n",
		"a.rs":   "fn main() {}",
		"A.java": "class A {}",
		"a.c":    "int main(void) { return 0; }",
		"a.php":  "<?php function f() {}",
		"a.rb":   "def f\nend\n",
	}

	langs := NewLanguages()
	for path, src := range sources {
		tree, err := langs.ParseFile(context.Background(), path, []byte(src))
		require.NoError(t, err, path)
		assert.NotZero(t, tree.Root().ChildCount(), path)
		tree.Close()
	}
}

func TestChildrenOfKind(t *testing.T) {
	t.Parallel()

	source := []byte("const a = 1, b = 2;")
	tree, err := NewLanguages().ParseFile(context.Background(), "a.ts", source)
	require.NoError(t, err)
	defer tree.Close()

	decl := FirstChildOfKind(tree.Root(), "lexical_declaration")
	require.NotNil(t, decl)
	declarators := ChildrenOfKind(decl, "variable_declarator")
	assert.Len(t, declarators, 2)
	assert.Len(t, Children(decl), decl.ChildCount())
}
