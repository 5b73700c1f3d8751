package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	require.NoError(t, WriteAtomic(path, []byte("first"), 0o600))
	require.NoError(t, WriteAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestWriteAtomicMissingDir(t *testing.T) {
	t.Parallel()
	err := WriteAtomic(filepath.Join(t.TempDir(), "nope", "report.txt"), []byte("x"), 0o644)
	assert.ErrorContains(t, err, "failed to create temp file")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.json")

	in := map[string]int{"rounds": 100, "wins": 42}
	require.NoError(t, WriteJSON(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]int
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestWriteJSONUnsupportedValue(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.json")
	assert.Error(t, WriteJSON(path, make(chan int)))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
