package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", filepath.Join("nested", "c.hcl")} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)

	single, err := FindFilesByExtension(filepath.Join(root, "notes.txt"), ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "notes.txt")}, single)

	_, err = FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
	assert.Error(t, err)
}
