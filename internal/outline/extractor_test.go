package outline_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-outline/internal/names"
	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/syntax"
	st "github.com/mvp-joe/code-outline/internal/syntax/syntaxtest"
	"github.com/mvp-joe/code-outline/internal/treeutil"
)

// Test Plan for Extractor:
// - An unnamed wrapper around a named function is spliced out and the
//   function promoted; a depth limit of 1 excludes the promoted function
// - Splicing yields nothing, the single found node, or a wrapper for many
// - Nodes under a splice wrapper are trimmed to the depth budget
// - Structural placeholders keep an explicit empty children list
// - Error markers, insignificant types and anonymous tokens never appear
// - The root is always represented
// - Named-only nodes are a subset of all-nodes nodes at unbounded depth,
//   including declarations behind expression wrappers in every grammar
// - Raising the depth limit never loses nodes in all-nodes mode
// - Every non-structural node kept in named-only mode has a name
// - Panics from the namer propagate to the caller

const iifeSource = `function outer() {}
(function () {
  function inner() {}
})();
`

const sampleSource = `import { readFile } from "fs";

export class Greeter {
  greeting = "hi";

  greet(name) {
    console.log(this.greeting, name);
    return name;
  }
}

const handlers = {
  open: function onOpen() {},
  close() {},
};

const run = () => {
  function helper() {}
  helper();
};

(function () {
  function setup() {}
})();
`

// declNamer names "decl" nodes after their "id" child.
type declNamer struct{}

func (declNamer) Name(node syntax.Node, source []byte) string {
	if node.Kind() != "decl" {
		return ""
	}
	return syntax.Text(syntax.FirstChildOfKind(node, "id"), source)
}

// panicNamer fails on every node.
type panicNamer struct{}

func (panicNamer) Name(syntax.Node, []byte) string { panic("namer exploded") }

func decl(name string, children ...*st.Node) *st.Node {
	return st.Branch("decl", append([]*st.Node{st.Leaf("id", name)}, children...)...)
}

func fakeExtractor(t *testing.T) *outline.Extractor {
	t.Helper()
	classes, err := outline.NewClassification(
		[]string{"decl", "wrap"},
		[]string{"root", "body"},
		[]string{"comment"},
	)
	require.NoError(t, err)
	return outline.NewExtractor(declNamer{}, classes)
}

func extractFake(t *testing.T, root *st.Node, opts outline.Options) *outline.Node {
	t.Helper()
	node, source := st.Build(root)
	return fakeExtractor(t).Extract(node, source, opts)
}

func extractTS(t *testing.T, src string, opts outline.Options) *outline.Node {
	t.Helper()
	return extractFile(t, "sample.ts", src, opts)
}

func extractFile(t *testing.T, path, src string, opts outline.Options) *outline.Node {
	t.Helper()
	tree, err := syntax.NewLanguages().ParseFile(context.Background(), path, []byte(src))
	require.NoError(t, err)
	defer tree.Close()

	ex := outline.NewExtractor(names.NewDefaultRegistry(), outline.DefaultClassification())
	return ex.Extract(tree.Root(), tree.Source, opts)
}

func namesOf(nodes []*outline.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestExtract_IIFEPromotesInnerFunction(t *testing.T) {
	t.Parallel()

	root := extractTS(t, iifeSource, outline.Options{MaxDepth: outline.Unbounded, NamedOnly: true})
	require.NotNil(t, root)
	assert.Equal(t, "program", root.Type)
	assert.Equal(t, []string{"outer", "inner"}, namesOf(root.Children))
	for _, child := range root.Children {
		assert.Equal(t, "function_declaration", child.Type)
	}
	assert.Equal(t, 3, root.Children[1].Start.Line())
}

func TestExtract_IIFEDepthOne(t *testing.T) {
	t.Parallel()

	root := extractTS(t, iifeSource, outline.Options{MaxDepth: 1, NamedOnly: true})
	require.NotNil(t, root)
	assert.Equal(t, []string{"outer"}, namesOf(root.Children))
}

func TestExtract_SpliceFindsNothing(t *testing.T) {
	t.Parallel()

	root := extractFake(t, st.Branch("root",
		st.Branch("wrap", st.Leaf("num", "1"), st.Leaf("num", "2")),
	), outline.DefaultOptions())

	require.NotNil(t, root)
	assert.NotNil(t, root.Children, "structural root keeps an explicit empty list")
	assert.Empty(t, root.Children)
}

func TestExtract_SplicePromotesSingleNode(t *testing.T) {
	t.Parallel()

	root := extractFake(t, st.Branch("root",
		st.Branch("wrap", st.Leaf("num", "1"), decl("a")),
	), outline.DefaultOptions())

	require.Len(t, root.Children, 1)
	assert.Equal(t, "decl", root.Children[0].Type)
	assert.Equal(t, "a", root.Children[0].Name)
	assert.Nil(t, root.Children[0].Children)
}

func TestExtract_SpliceWrapsManyNodes(t *testing.T) {
	t.Parallel()

	root := extractFake(t, st.Branch("root",
		st.Branch("wrap", decl("a"), st.Token("+"), decl("b")),
	), outline.DefaultOptions())

	require.Len(t, root.Children, 1)
	wrapper := root.Children[0]
	assert.Equal(t, "wrap", wrapper.Type)
	assert.False(t, wrapper.Named())
	assert.Equal(t, []string{"a", "b"}, namesOf(wrapper.Children))
}

func TestExtract_SpliceWrapperRespectsDepth(t *testing.T) {
	t.Parallel()

	tree := func() *st.Node {
		return st.Branch("root",
			st.Branch("wrap", decl("a", decl("c")), decl("b")),
		)
	}

	shallow := extractFake(t, tree(), outline.Options{MaxDepth: 2, NamedOnly: true})
	wrapper := shallow.Children[0]
	assert.Equal(t, []string{"a", "b"}, namesOf(wrapper.Children))
	assert.Nil(t, wrapper.Children[0].Children)
	assert.LessOrEqual(t, treeutil.MaxDepth(shallow), 3)

	deeper := extractFake(t, tree(), outline.Options{MaxDepth: 3, NamedOnly: true})
	assert.Equal(t, []string{"c"}, namesOf(deeper.Children[0].Children[0].Children))
}

func TestExtract_StructuralPlaceholder(t *testing.T) {
	t.Parallel()

	root := extractFake(t, st.Branch("root",
		decl("a", st.Branch("body", st.Leaf("num", "1"))),
	), outline.DefaultOptions())

	a := root.Children[0]
	require.Len(t, a.Children, 1)
	body := a.Children[0]
	assert.Equal(t, "body", body.Type)
	assert.NotNil(t, body.Children)
	assert.Empty(t, body.Children)

	// At the depth limit a placeholder is kept without descending.
	limited := extractFake(t, st.Branch("root",
		st.Branch("body", decl("x")),
	), outline.Options{MaxDepth: 1, NamedOnly: true})
	require.Len(t, limited.Children, 1)
	assert.Nil(t, limited.Children[0].Children)
}

func TestExtract_SkipsErrorsAndInsignificant(t *testing.T) {
	t.Parallel()

	root := extractFake(t, st.Branch("root",
		st.Error(decl("broken")),
		st.Branch("comment", decl("hidden")),
		st.Token("{"),
		decl("kept"),
	), outline.Options{MaxDepth: outline.Unbounded})

	var types []string
	treeutil.Walk(root, func(n *outline.Node, _ int, _ *outline.Node) {
		types = append(types, n.Type)
		assert.NotEqual(t, "broken", n.Name)
		assert.NotEqual(t, "hidden", n.Name)
	})
	assert.NotContains(t, types, "ERROR")
	assert.NotContains(t, types, "comment")
	assert.NotContains(t, types, "{")
	assert.Equal(t, []string{"kept"}, namesOf(root.Children))
}

func TestExtract_AllNodesKeepsUnnamed(t *testing.T) {
	t.Parallel()

	root := extractFake(t, st.Branch("root",
		st.Branch("wrap", decl("a")),
	), outline.Options{MaxDepth: outline.Unbounded})

	require.Len(t, root.Children, 1)
	wrap := root.Children[0]
	assert.Equal(t, "wrap", wrap.Type)
	require.Len(t, wrap.Children, 1)
	a := wrap.Children[0]
	assert.Equal(t, "a", a.Name)
	require.Len(t, a.Children, 1)
	assert.Equal(t, "id", a.Children[0].Type)
}

func TestExtract_RootAlwaysPresent(t *testing.T) {
	t.Parallel()

	ex := fakeExtractor(t)
	node, source := st.Build(st.Branch("wrap", st.Leaf("num", "1")))
	root := ex.Extract(node, source, outline.DefaultOptions())
	require.NotNil(t, root)
	assert.Equal(t, "wrap", root.Type)
	assert.Nil(t, root.Children)

	assert.Nil(t, ex.Extract(nil, nil, outline.DefaultOptions()))
}

// subsetSources hide named declarations behind expression and clause
// wrappers that named-only mode passes through.
var subsetSources = []struct {
	path string
	src  string
	want []string
}{
	{"sample.ts", sampleSource, []string{"Greeter", "greet", "handlers", "onOpen", "run", "helper", "setup"}},
	{"wrapped.ts", `const handlers = { open() {} } as const;
const merged = { ...{ spreadMe() {} } };
const checked = { close() {} } satisfies object;
const pick = flag || { fallback() {} };
`, []string{"open", "spreadMe", "close", "fallback"}},
	{"bang.js", `!function () {
  function inner() {}
}();
`, []string{"inner"}},
	{"compat.py", `try:
    import json
except ImportError:
    def fallback():
        pass

match command:
    case "go":
        def go():
            pass
`, []string{"fallback", "go"}},
	{"D.java", `class D {
    void start() {
        execute(new Runnable() {
            public void run() {}
        });
    }
}
`, []string{"D", "start", "run"}},
	{"main.rs", `fn main() {
    let f = || {
        fn helper() {}
    };
    match 1 {
        _ => {
            fn arm() {}
        }
    }
    if true {
        fn branch() {}
    }
}
`, []string{"main", "helper", "arm", "branch"}},
}

func TestExtract_NamedOnlySubsetOfAllNodes(t *testing.T) {
	t.Parallel()

	key := func(n *outline.Node) string {
		return fmt.Sprintf("%s|%s|%d:%d", n.Type, n.Name, n.Start.Row, n.Start.Column)
	}

	for _, tc := range subsetSources {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			namedOnly := extractFile(t, tc.path, tc.src, outline.Options{MaxDepth: outline.Unbounded, NamedOnly: true})
			allNodes := extractFile(t, tc.path, tc.src, outline.Options{MaxDepth: outline.Unbounded})

			all := make(map[string]bool)
			for _, n := range outline.Named(allNodes) {
				all[key(n)] = true
			}
			named := outline.Named(namedOnly)
			require.NotEmpty(t, named)
			for _, n := range named {
				assert.True(t, all[key(n)], "%s %q missing from all-nodes outline", n.Type, n.Name)
			}

			found := strings.Join(namesOf(named), "\n")
			for _, want := range tc.want {
				assert.Contains(t, found, want)
			}
		})
	}
}

func TestExtract_DepthIsMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for depth := 1; depth <= 8; depth++ {
		root := extractTS(t, sampleSource, outline.Options{MaxDepth: depth})
		count := treeutil.Count(root)
		assert.GreaterOrEqual(t, count, prev, "depth %d", depth)
		assert.LessOrEqual(t, treeutil.MaxDepth(root), depth+1, "depth %d", depth)
		prev = count
	}
}

func TestExtract_NamedOnlyNodesAreNamed(t *testing.T) {
	t.Parallel()

	classes := outline.DefaultClassification()
	root := extractTS(t, sampleSource, outline.DefaultOptions())

	// Splice wrappers are unnamed but always hold more than one node.
	treeutil.Walk(root, func(n *outline.Node, _ int, parent *outline.Node) {
		if parent == nil || n.Named() || classes.IsStructural(n.Type) {
			return
		}
		assert.GreaterOrEqual(t, len(n.Children), 2, "unnamed %s kept without being a wrapper", n.Type)
	})
}

func TestExtract_NamerPanicPropagates(t *testing.T) {
	t.Parallel()

	ex := outline.NewExtractor(panicNamer{}, outline.DefaultClassification())
	node, source := st.Build(st.Branch("program", decl("a")))
	assert.PanicsWithValue(t, "namer exploded", func() {
		ex.Extract(node, source, outline.DefaultOptions())
	})
}

func TestExtract_TrimsNames(t *testing.T) {
	t.Parallel()

	ex := outline.NewExtractor(namerFunc(func(syntax.Node, []byte) string { return "  spaced \n" }), outline.DefaultClassification())
	node, source := st.Build(st.Leaf("identifier", "x"))
	root := ex.Extract(node, source, outline.DefaultOptions())
	assert.Equal(t, "spaced", root.Name)
}

type namerFunc func(syntax.Node, []byte) string

func (f namerFunc) Name(node syntax.Node, source []byte) string { return f(node, source) }
