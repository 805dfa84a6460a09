package outline

// FileResult pairs a file with its outline. Outline is nil when the file
// could not be parsed or extracted; Err then says why.
type FileResult struct {
	File    string `json:"file" yaml:"file"`
	Outline *Node  `json:"outline" yaml:"outline"`
	Err     error  `json:"-" yaml:"-"`
}

// OK reports whether the file produced an outline.
func (r FileResult) OK() bool { return r.Outline != nil }

// Succeeded returns the results that produced an outline, in order.
func Succeeded(results []FileResult) []FileResult {
	out := make([]FileResult, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}
