// Package testutil provides test helpers for pyprep tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTempFile writes content to a file in dir, creating parent directories.
func WriteTempFile(t testing.TB, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create parent of %s", filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write temp file: %s", filename)

	return path
}

// WriteConfig writes a config file named filename into a fresh temp dir.
// The extension selects the format the loader uses.
func WriteConfig(t testing.TB, filename, content string) string {
	t.Helper()
	return WriteTempFile(t, t.TempDir(), filename, content)
}
