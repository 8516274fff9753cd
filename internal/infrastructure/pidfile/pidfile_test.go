package pidfile_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/infrastructure/pidfile"
)

func TestAcquireAndRelease(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "run", "watch.pid")
	lock := pidfile.New(path)

	// Act
	require.NoError(t, lock.Acquire())
	data, err := os.ReadFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
	require.NoError(t, lock.Release())
	assert.NoFileExists(t, path)
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "watch.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	// Act
	err := pidfile.New(path).Acquire()

	// Assert
	assert.NoError(t, err)
}

func TestAcquire_RefusesLiveOwner(t *testing.T) {
	// Arrange: pid 1 is always running
	path := filepath.Join(t.TempDir(), "watch.pid")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))
	lock := pidfile.New(path)

	// Act
	err := lock.Acquire()

	// Assert
	var held *pidfile.HeldError
	require.ErrorAs(t, err, &held)
	assert.Equal(t, 1, held.PID)
	require.NoError(t, lock.Release())
	assert.FileExists(t, path, "release must not remove a lock it does not own")
}
