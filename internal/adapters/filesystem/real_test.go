package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_WriteAndRead(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "profile")

	require.NoError(t, fs.WriteFile(path, []byte("export A=1\n"), 0o644))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export A=1\n", string(data))
}

func TestRealFileSystem_AppendFile_CreatesMissingFile(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	path := filepath.Join(t.TempDir(), ".bashrc")

	require.NoError(t, fs.AppendFile(path, []byte("line one\n"), 0o644))
	require.NoError(t, fs.AppendFile(path, []byte("line two\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestRealFileSystem_Exists(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	dir := t.TempDir()
	file := filepath.Join(dir, "asdf.sh")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, fs.Exists(file))
	assert.True(t, fs.Exists(dir))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing")))
}

func TestRealFileSystem_IsDir(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, fs.IsDir(dir))
	assert.False(t, fs.IsDir(file))
	assert.False(t, fs.IsDir(filepath.Join(dir, "missing")))
}

func TestRealFileSystem_MkdirAll(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	nested := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, fs.MkdirAll(nested, 0o755))
	assert.True(t, fs.IsDir(nested))
}
