// SPDX-License-Identifier: MIT

package configfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeAtomic(context.Background(), path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomicFailureLeavesTargetIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "config.yaml")

	err := writeAtomic(context.Background(), path, []byte("data"))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteAtomicPreservesExistingFileOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	// Target is a non-empty directory: the final rename cannot succeed.
	target := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0o755))

	err := writeAtomic(context.Background(), target, []byte("data"))
	require.Error(t, err)

	// The directory is untouched and no temp files remain beside it.
	info, statErr := os.Stat(target)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}
