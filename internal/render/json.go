package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mvp-joe/code-outline/internal/outline"
)

// renderJSON writes the batch as an indented JSON array of
// {"file", "outline"} objects.
func renderJSON(results []outline.FileResult, opts Options) (string, error) {
	prepared := prepare(results, opts)
	if prepared == nil {
		prepared = []outline.FileResult{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prepared); err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return buf.String(), nil
}

// DecodeJSON parses json output back into file results.
func DecodeJSON(data []byte) ([]outline.FileResult, error) {
	var results []outline.FileResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return results, nil
}
