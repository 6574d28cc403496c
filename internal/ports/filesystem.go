package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSystem provides the file operations the bootstrap needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	// AppendFile appends data to path, creating the file with perm if missing.
	AppendFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
}

// Environment reads and mutates process environment variables.
type Environment interface {
	Getenv(key string) string
	Setenv(key, value string) error
}

// ExpandHome expands a leading ~ against home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
