//go:build fsnotify

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/dsassist/core/detect"
	"github.com/adalundhe/dsassist/core/templates"
)

const fsTestDebounce = 50 * time.Millisecond

func fsStartWatcher(t *testing.T, dir string) <-chan *FileEvent {
	t.Helper()
	cfg := DefaultConfig(dir)
	cfg.Debounce = fsTestDebounce

	w, err := NewWatcher(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	events, err := w.Start(ctx)
	require.NoError(t, err)

	// Let the watches settle.
	time.Sleep(20 * time.Millisecond)
	return events
}

func fsWaitForEvent(t *testing.T, ch <-chan *FileEvent, timeout time.Duration) *FileEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(timeout):
		t.Fatal("timeout waiting for event")
		return nil
	}
}

func TestFSWatcher_DetectsSourceFile(t *testing.T) {
	dir := t.TempDir()
	events := fsStartWatcher(t, dir)

	path := filepath.Join(dir, "Solution.java")
	require.NoError(t, os.WriteFile(path, []byte(bfsSource), 0o644))

	ev := fsWaitForEvent(t, events, 2*time.Second)
	assert.Equal(t, path, ev.Path)
}

func TestFSWatcher_IgnoresNonSourceFiles(t *testing.T) {
	dir := t.TempDir()
	events := fsStartWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("queue"), 0o644))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(5 * fsTestDebounce):
	}
}

func TestFSWatcher_WatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	events := fsStartWatcher(t, dir)

	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(20 * time.Millisecond)

	path := filepath.Join(sub, "solve.py")
	require.NoError(t, os.WriteFile(path, []byte(twoSumSource), 0o644))

	ev := fsWaitForEvent(t, events, 2*time.Second)
	assert.Equal(t, path, ev.Path)
}

func TestFSWatcher_SessionEndToEnd(t *testing.T) {
	dir := t.TempDir()
	events := fsStartWatcher(t, dir)

	s, err := NewSession(detect.New(templates.Default()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reports := s.Run(ctx, events)

	path := filepath.Join(dir, "Solution.java")
	require.NoError(t, os.WriteFile(path, []byte(twoSumSource), 0o644))

	select {
	case r := <-reports:
		assert.Equal(t, path, r.Path)
		assert.Equal(t, []string{"two-sum"}, r.Patterns)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for report")
	}
}
