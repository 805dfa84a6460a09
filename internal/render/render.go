// Package render turns batches of outlines into text.
//
// The plain formats (text, json, yaml, dot) serialize each successful file's
// outline as-is. The compressed format computes path and type aliases over the
// whole batch and emits one short line per node.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/code-outline/internal/outline"
)

// ErrUnsupportedFormat indicates a format name no renderer handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format names an output format.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatCompressed Format = "compressed"
	FormatDOT        Format = "dot"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatCompressed, FormatText, FormatJSON, FormatYAML, FormatDOT}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "compressed", "llm":
		return FormatCompressed, nil
	case "dot":
		return FormatDOT, nil
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, name, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Options tunes rendering.
type Options struct {
	// AnnotateFiles stamps named nodes with the path of their file.
	AnnotateFiles bool
}

type renderFunc func(results []outline.FileResult, opts Options) (string, error)

var renderers = map[Format]renderFunc{
	FormatText:       renderText,
	FormatJSON:       renderJSON,
	FormatYAML:       renderYAML,
	FormatCompressed: renderCompressed,
	FormatDOT:        renderDOT,
}

// Render renders results in format. Failed files are left out of every
// format; an unknown format produces no output at all.
func Render(results []outline.FileResult, format Format, opts Options) (string, error) {
	fn, ok := renderers[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return fn(outline.Succeeded(results), opts)
}

// prepare returns the outlines to serialize, stamped with file paths when
// requested. Inputs are never modified.
func prepare(results []outline.FileResult, opts Options) []outline.FileResult {
	if !opts.AnnotateFiles {
		return results
	}
	out := make([]outline.FileResult, len(results))
	for i, r := range results {
		out[i] = outline.FileResult{File: r.File, Outline: outline.WithFile(r.Outline, r.File)}
	}
	return out
}
