package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mvp-joe/code-outline/internal/outline"
)

// Key identifies one outline: the file, the exact content it was built from
// and the options of the walk.
type Key struct {
	Path      string
	Digest    string
	MaxDepth  int
	NamedOnly bool
}

// KeyFor builds the key for path with the given content and options.
func KeyFor(path string, content []byte, opts outline.Options) Key {
	return Key{
		Path:      path,
		Digest:    hashBytes(content)[:16],
		MaxDepth:  opts.MaxDepth,
		NamedOnly: opts.NamedOnly,
	}
}

// hashBytes returns SHA-256 hash of the input as hex.
func hashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
