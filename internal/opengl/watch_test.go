package opengl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/shaders"
)

func TestIsShader(t *testing.T) {
	assert.True(t, isShader("/tmp/pbr.fs"))
	assert.True(t, isShader("basic.vs"))
	assert.False(t, isShader("notes.txt"))
	assert.False(t, isShader("pbr.fs.swp"))
}

func TestWatchMarksCacheDirty(t *testing.T) {
	dir := t.TempDir()
	cache := NewProgramCache(shaders.Source{Dir: dir}, nil)

	w, err := Watch(dir, cache, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))
	time.Sleep(50 * time.Millisecond)
	assert.False(t, cache.dirty.Load(), "non-shader files are ignored")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.fs"), []byte("x"), 0o644))
	assert.Eventually(t, cache.dirty.Load, 2*time.Second, 10*time.Millisecond)
}

func TestWatchMissingDir(t *testing.T) {
	cache := NewProgramCache(shaders.Source{}, nil)
	_, err := Watch(filepath.Join(t.TempDir(), "nope"), cache, nil)
	assert.Error(t, err)
}
