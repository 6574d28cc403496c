package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// FileSystem is a thread-safe test double for ports.FileSystem.
type FileSystem struct {
	mu        sync.RWMutex
	files     map[string][]byte
	dirs      map[string]bool
	failWrite map[string]error
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:     make(map[string][]byte),
		dirs:      make(map[string]bool),
		failWrite: make(map[string]error),
	}
}

// AddFile adds a file to the mock filesystem.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = []byte(content)
}

// AddDir adds a directory to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
}

// FailWrites makes WriteFile and AppendFile on path return err.
func (fs *FileSystem) FailWrites(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.failWrite[path] = err
}

// Content returns the current content of path, or "" when absent.
func (fs *FileSystem) Content(path string) string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return string(fs.files[path])
}

// ReadFile reads a file from the mock filesystem.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
}

// WriteFile writes a file to the mock filesystem.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := fs.failWrite[path]; err != nil {
		return err
	}
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

// AppendFile appends to a file in the mock filesystem, creating it if missing.
func (fs *FileSystem) AppendFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := fs.failWrite[path]; err != nil {
		return err
	}
	_, exists := fs.files[path]
	if !exists && !fs.dirs[filepath.Dir(path)] && filepath.Dir(path) != "." {
		return fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	fs.files[path] = append(fs.files[path], data...)
	return nil
}

// Exists checks if a file or directory exists in the mock filesystem.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, fileExists := fs.files[path]
	return fileExists || fs.dirs[path]
}

// IsDir checks if a path is a directory in the mock filesystem.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[path]
}

// MkdirAll records path and all of its parents as directories.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for p := filepath.Clean(path); p != "/" && p != "."; p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

// Reset clears all files and directories.
func (fs *FileSystem) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files = make(map[string][]byte)
	fs.dirs = make(map[string]bool)
	fs.failWrite = make(map[string]error)
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
