package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecko-animutils/internal/watch"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := watch.New([]string{".bbmodel"}, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	p := filepath.Join(dir, "zombie.bbmodel")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, p, got)
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := watch.New([]string{".bbmodel"}, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestNewMissingDir(t *testing.T) {
	_, err := watch.New([]string{".bbmodel"}, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	w, err := watch.New([]string{".bbmodel", ".java"}, t.TempDir())
	require.NoError(t, err)
	defer w.Close()
	assert.True(t, w.Matches("a/B.JAVA"))
	assert.True(t, w.Matches("a.bbmodel"))
	assert.False(t, w.Matches("a.json"))
}
