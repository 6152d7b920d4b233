package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories_CreatesNestedPaths(t *testing.T) {
	root := t.TempDir()

	err := EnsureDirectories(root, []string{"outputs", "data/uploads"})

	require.NoError(t, err)
	for _, dir := range []string{"outputs", "data/uploads"} {
		info, statErr := os.Stat(filepath.Join(root, dir))
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureDirectories_Idempotent(t *testing.T) {
	root := t.TempDir()
	dirs := []string{"outputs", "logs"}

	require.NoError(t, EnsureDirectories(root, dirs))
	require.NoError(t, EnsureDirectories(root, dirs))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEnsureDirectories_ExistingFileBlocksCreation(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "outputs"), []byte("x"), 0644))

	err := EnsureDirectories(root, []string{"outputs"})

	assert.Error(t, err)
}

func TestEnsureDirectories_EmptyListIsNoOp(t *testing.T) {
	assert.NoError(t, EnsureDirectories(t.TempDir(), nil))
}
