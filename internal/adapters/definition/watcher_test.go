package definition_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
)

func TestWatcher_ReportsBurstOfWritesOnce(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	w, err := definition.NewWatcher(dir, 50*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	path := filepath.Join(dir, "hbk-4g.toml")

	// Act
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("format = 1\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	// Assert
	select {
	case changed := <-w.Changes:
		want, _ := filepath.EvalSymlinks(path)
		got, _ := filepath.EvalSymlinks(changed)
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case changed := <-w.Changes:
		t.Fatalf("unexpected second report for %s", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopClosesChannels(t *testing.T) {
	// Arrange
	w, err := definition.NewWatcher(t.TempDir(), 0)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	// Act
	w.Stop()
	w.Stop()

	// Assert
	_, open := <-w.Changes
	assert.False(t, open)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := definition.NewWatcher(t.TempDir(), 0)
	require.NoError(t, err)

	assert.NotPanics(t, w.Stop)
}

func TestIsSheet(t *testing.T) {
	assert.True(t, definition.IsSheet("/sheets/atlas.toml"))
	assert.False(t, definition.IsSheet("/sheets/.atlas.toml"))
	assert.False(t, definition.IsSheet("/sheets/atlas.toml.swp"))
	assert.False(t, definition.IsSheet("/sheets/atlas.mtf"))
}
