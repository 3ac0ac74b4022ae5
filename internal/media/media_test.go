package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyIntoLibrary(t *testing.T) {
	src := filepath.Join(t.TempDir(), "note.m4a")
	require.NoError(t, os.WriteFile(src, []byte("audio bytes"), 0o644))

	dir := filepath.Join(t.TempDir(), "library")
	dst, err := CopyIntoLibrary(dir, src, KindAudio)
	require.NoError(t, err)

	name := filepath.Base(dst)
	assert.True(t, strings.HasPrefix(name, "catch_"), "got %s", name)
	assert.True(t, strings.HasSuffix(name, ".m4a"), "got %s", name)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio bytes"), data)

	// two copies of the same source get distinct names
	dst2, err := CopyIntoLibrary(dir, src, KindAudio)
	require.NoError(t, err)
	assert.NotEqual(t, dst, dst2)
}

func TestCopyIntoLibraryVideoPrefix(t *testing.T) {
	src := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(src, []byte("video"), 0o644))

	dst, err := CopyIntoLibrary(t.TempDir(), src, KindVideo)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(dst), "catch_video_"))
}

func TestCopyIntoLibraryMissingSource(t *testing.T) {
	_, err := CopyIntoLibrary(t.TempDir(), filepath.Join(t.TempDir(), "absent.m4a"), KindAudio)
	assert.Error(t, err)
}
