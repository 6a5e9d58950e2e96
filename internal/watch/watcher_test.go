package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwd/internal/testutil"
)

func waitForHits(t *testing.T, hits *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		if hits.Load() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected at least %d change callbacks, got %d", want, hits.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatcher_FiresOnActiveFileWrite(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active.txt")
	require.NoError(t, os.WriteFile(active, nil, 0644))

	var hits atomic.Int64
	w := NewWatcher(&testutil.MockLogger{})
	require.NoError(t, w.Start(dir, func() string { return active }, func() {
		hits.Add(1)
	}))
	defer w.Stop()

	appendTo(t, active, "line\n")
	waitForHits(t, &hits, 1)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(active, nil, 0644))

	var hits atomic.Int64
	w := NewWatcher(&testutil.MockLogger{})
	require.NoError(t, w.Start(dir, func() string { return active }, func() {
		hits.Add(1)
	}))
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("noise\n"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, hits.Load())
}

func TestWatcher_ActivePathReReadPerEvent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, nil, 0644))
	require.NoError(t, os.WriteFile(second, nil, 0644))

	var current atomic.Value
	current.Store(first)

	var hits atomic.Int64
	w := NewWatcher(&testutil.MockLogger{})
	require.NoError(t, w.Start(dir, func() string { return current.Load().(string) }, func() {
		hits.Add(1)
	}))
	defer w.Stop()

	// Simulate rollover: the active file changes without restarting the watch.
	current.Store(second)
	appendTo(t, second, "line\n")
	waitForHits(t, &hits, 1)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active.txt")
	require.NoError(t, os.WriteFile(active, nil, 0644))

	w := NewWatcher(&testutil.MockLogger{})
	require.NoError(t, w.Start(dir, func() string { return active }, func() {}))

	w.Stop()
	w.Stop()
}

func TestWatcher_StartOnMissingDir(t *testing.T) {
	w := NewWatcher(&testutil.MockLogger{})
	err := w.Start(filepath.Join(t.TempDir(), "absent"), func() string { return "" }, func() {})
	assert.Error(t, err)
}
