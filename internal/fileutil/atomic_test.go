package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic("/nonexistent/dir/save.json", []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	require.NoError(t, WriteJSON(path, record{Name: "jade", Count: 3}, 0o644))

	var got record
	require.NoError(t, ReadJSON(path, &got))
	assert.Equal(t, record{Name: "jade", Count: 3}, got)
}

func TestReadJSONMissing(t *testing.T) {
	t.Parallel()

	var v map[string]any
	err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &v)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadJSONCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var v map[string]any
	err := ReadJSON(path, &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}
