package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileWatcher:
// - NewFileWatcher fails for a missing directory
// - Rapid writes to several files arrive as one sorted, de-duplicated batch
// - Files with other extensions never trigger a batch
// - Ignored directories are not watched
// - Changes made while paused fire on Resume
// - Files in directories created after Start are seen
// - Stop is idempotent

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, dir string, opts ...Option) (FileWatcher, <-chan []string) {
	t.Helper()
	opts = append([]Option{WithDebounce(testDebounce)}, opts...)
	w, err := NewFileWatcher([]string{dir}, []string{".ts", ".py"}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	batches := make(chan []string, 8)
	require.NoError(t, w.Start(context.Background(), func(files []string) { batches <- files }))
	return w, batches
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case files := <-batches:
		return files
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func assertNoBatch(t *testing.T, batches <-chan []string) {
	t.Helper()
	select {
	case files := <-batches:
		t.Fatalf("unexpected batch %v", files)
	case <-time.After(4 * testDebounce):
	}
}

func TestNewFileWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "nope")}, []string{".ts"})
	assert.Error(t, err)
}

func TestFileWatcher_BatchesChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, batches := startWatcher(t, dir)

	b := filepath.Join(dir, "b.ts")
	a := filepath.Join(dir, "a.py")
	write(t, b, "1")
	write(t, a, "1")
	write(t, b, "2")

	files := waitBatch(t, batches)
	assert.Equal(t, []string{a, b}, files)
}

func TestFileWatcher_FiltersExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, batches := startWatcher(t, dir)

	write(t, filepath.Join(dir, "notes.md"), "x")
	assertNoBatch(t, batches)
}

func TestFileWatcher_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(vendor, 0o755))

	_, batches := startWatcher(t, dir, WithIgnore(func(path string, _ bool) bool {
		return strings.Contains(filepath.ToSlash(path), "/vendor")
	}))

	write(t, filepath.Join(vendor, "lib.ts"), "x")
	assertNoBatch(t, batches)

	keep := filepath.Join(dir, "app.ts")
	write(t, keep, "x")
	assert.Equal(t, []string{keep}, waitBatch(t, batches))
}

func TestFileWatcher_PauseResume(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, batches := startWatcher(t, dir)

	w.Pause()
	file := filepath.Join(dir, "paused.ts")
	write(t, file, "x")
	assertNoBatch(t, batches)

	w.Resume()
	assert.Equal(t, []string{file}, waitBatch(t, batches))
}

func TestFileWatcher_NewDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, batches := startWatcher(t, dir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(2 * testDebounce)

	file := filepath.Join(sub, "late.ts")
	write(t, file, "x")
	assert.Contains(t, waitBatch(t, batches), file)
}

func TestFileWatcher_StopIdempotent(t *testing.T) {
	t.Parallel()

	w, err := NewFileWatcher([]string{t.TempDir()}, []string{".ts"})
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
