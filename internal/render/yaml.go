package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/code-outline/internal/outline"
)

// renderYAML writes the batch as a YAML sequence of file/outline mappings.
func renderYAML(results []outline.FileResult, opts Options) (string, error) {
	prepared := prepare(results, opts)
	if prepared == nil {
		prepared = []outline.FileResult{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(prepared); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.String(), nil
}

// DecodeYAML parses yaml output back into file results.
func DecodeYAML(data []byte) ([]outline.FileResult, error) {
	var results []outline.FileResult
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return results, nil
}
