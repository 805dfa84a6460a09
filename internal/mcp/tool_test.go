package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/render"
)

// Test Plan for get_outline:
// - Registration does not panic
// - A relative file path yields an outline keyed by its root-relative path
// - Directories and globs resolve through discovery
// - max_depth, named_only and format override the defaults
// - Arguments sent as strings (arrays, booleans, numbers) are coerced
// - Missing paths, bad formats, negative depths and unknown files are tool
//   errors, not protocol errors
// - Paths that resolve outside the root are rejected, whether absolute, climbing
//   with "..", or globs; absolute paths inside the root still work
// - Repeated calls are served from the cache

const appSource = `class Greeter {
  greet(name) {
    return name;
  }
}

function main() {
  return 1;
}
`

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/app.ts":    appSource,
		"src/util.py":   "def helper():\n    pass\n",
		"notes.txt":     "plain text",
		"broken/bad.rs": "fn ok() {}\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	svc, err := NewService(root, nil, nil)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc, root
}

func callTool(t *testing.T, svc *Service, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	handler := createOutlineHandler(svc)
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	require.NoError(t, err, "tool failures must not be protocol errors")
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return text.Text
}

func decodeResults(t *testing.T, result *mcp.CallToolResult) []outline.FileResult {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	results, err := render.DecodeJSON([]byte(resultText(t, result)))
	require.NoError(t, err)
	return results
}

func namesOf(root *outline.Node) []string {
	var out []string
	for _, n := range outline.Named(root) {
		out = append(out, n.Name)
	}
	return out
}

func TestAddOutlineTool_Registration(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	mcpServer := server.NewMCPServer("test-server", "1.0.0", server.WithToolCapabilities(true))

	require.NotPanics(t, func() {
		AddOutlineTool(mcpServer, svc)
	})
}

func TestOutlineHandler_File(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	results := decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":  []interface{}{"src/app.ts"},
		"format": "json",
	}))

	require.Len(t, results, 1)
	assert.Equal(t, "src/app.ts", results[0].File)
	assert.Equal(t, []string{"Greeter", "greet", "main"}, namesOf(results[0].Outline))
}

func TestOutlineHandler_DirectoryAndGlob(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	results := decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":  []interface{}{"src"},
		"format": "json",
	}))
	require.Len(t, results, 2)
	assert.Equal(t, "src/app.ts", results[0].File)
	assert.Equal(t, "src/util.py", results[1].File)

	results = decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":  []interface{}{"**/*.py"},
		"format": "json",
	}))
	require.Len(t, results, 1)
	assert.Equal(t, "src/util.py", results[0].File)
	assert.Equal(t, []string{"helper"}, namesOf(results[0].Outline))
}

func TestOutlineHandler_Overrides(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	shallow := decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":     []interface{}{"src/app.ts"},
		"format":    "json",
		"max_depth": 1,
	}))
	require.Len(t, shallow, 1)
	assert.Equal(t, []string{"Greeter", "main"}, namesOf(shallow[0].Outline))

	all := decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":      []interface{}{"src/app.ts"},
		"format":     "json",
		"named_only": false,
	}))
	require.Len(t, all, 1)
	assert.NotEmpty(t, outline.FindByType(all[0].Outline, "return_statement"),
		"all-nodes mode keeps unnamed nodes")

	annotated := decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":    []interface{}{"src/app.ts"},
		"format":   "json",
		"annotate": true,
	}))
	require.Len(t, annotated, 1)
	for _, n := range outline.Named(annotated[0].Outline) {
		assert.Equal(t, "src/app.ts", n.File)
	}

	text := resultText(t, callTool(t, svc, map[string]interface{}{
		"paths": []interface{}{"src/app.ts"},
	}))
	assert.True(t, strings.HasPrefix(text, "[outline:compressed]"), "defaults to compressed")
	assert.Contains(t, text, "@src/app.ts")
}

func TestOutlineHandler_StringArguments(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	results := decodeResults(t, callTool(t, svc, map[string]interface{}{
		"paths":      `["src/app.ts"]`,
		"format":     "json",
		"max_depth":  "1",
		"named_only": "true",
	}))

	require.Len(t, results, 1)
	assert.Equal(t, []string{"Greeter", "main"}, namesOf(results[0].Outline))
}

func TestOutlineHandler_Errors(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing paths", map[string]interface{}{}},
		{"empty paths", map[string]interface{}{"paths": []interface{}{}}},
		{"bad format", map[string]interface{}{"paths": []interface{}{"src/app.ts"}, "format": "xml"}},
		{"negative depth", map[string]interface{}{"paths": []interface{}{"src/app.ts"}, "max_depth": -1}},
		{"missing file", map[string]interface{}{"paths": []interface{}{"src/nope.ts"}}},
		{"unsupported only", map[string]interface{}{"paths": []interface{}{"notes.txt"}}},
		{"glob without match", map[string]interface{}{"paths": []interface{}{"**/*.java"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, svc, tt.args)
			assert.True(t, result.IsError, "should be error result")
			assert.NotEmpty(t, resultText(t, result))
		})
	}
}

func TestOutline_PathsOutsideRoot(t *testing.T) {
	t.Parallel()

	svc, root := newTestService(t)

	outside := filepath.Join(t.TempDir(), "secret.ts")
	require.NoError(t, os.WriteFile(outside, []byte("function secret() {}\n"), 0o644))
	rel, err := filepath.Rel(root, outside)
	require.NoError(t, err)

	rejected := map[string]string{
		"absolute":         outside,
		"climbing":         filepath.ToSlash(rel),
		"climbing via src": "src/../../" + filepath.Base(root) + "/../" + filepath.ToSlash(rel),
		"glob climbing":    "../**/*.ts",
		"absolute glob":    filepath.ToSlash(filepath.Dir(outside)) + "/*.ts",
	}
	for name, path := range rejected {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Outline(context.Background(), OutlineRequest{Paths: []string{path}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutsideRoot), err.Error())

			result := callTool(t, svc, map[string]interface{}{"paths": []interface{}{path}})
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "outside the project root")
		})
	}

	out, err := svc.Outline(context.Background(), OutlineRequest{
		Paths:  []string{filepath.Join(root, "src", "util.py")},
		Format: "text",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "src/util.py")
	assert.Contains(t, out, "helper")
}

func TestOutlineHandler_CacheAndInvalidate(t *testing.T) {
	t.Parallel()

	svc, root := newTestService(t)
	args := map[string]interface{}{"paths": []interface{}{"src/app.ts"}, "format": "json"}

	first := resultText(t, callTool(t, svc, args))
	second := resultText(t, callTool(t, svc, args))
	assert.Equal(t, first, second)

	hits, _ := svc.cache.Stats()
	assert.Equal(t, int64(1), hits)

	svc.Invalidate([]string{filepath.Join(root, "src", "app.ts")})
	assert.Equal(t, 0, svc.cache.Len())
}
