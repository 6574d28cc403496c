package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileEquals asserts that a file contains exactly the expected content.
func AssertFileEquals(t testing.TB, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	actual := strings.ReplaceAll(string(content), "\r\n", "\n")
	assert.Equal(t, expected, actual, msgAndArgs...)
}

// AssertLineCount asserts that line appears as a whole line exactly want
// times in the file at path.
func AssertLineCount(t testing.TB, path, line string, want int) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	got := 0
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimRight(l, "\r") == line {
			got++
		}
	}
	assert.Equal(t, want, got, "occurrences of %q in %s", line, path)
}
