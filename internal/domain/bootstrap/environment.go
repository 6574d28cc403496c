package bootstrap

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Environment is the run's view of HOME, PATH and interactivity. PATH only
// grows during a run, and every change is pushed to the process so child
// commands see freshly installed binaries.
type Environment struct {
	mu          sync.RWMutex
	env         ports.Environment
	home        string
	path        []string
	interactive bool
}

// NewEnvironment snapshots HOME and PATH from env.
func NewEnvironment(env ports.Environment, interactive bool) *Environment {
	return &Environment{
		env:         env,
		home:        env.Getenv("HOME"),
		path:        splitPath(env.Getenv("PATH")),
		interactive: interactive,
	}
}

func splitPath(value string) []string {
	var out []string
	for _, dir := range filepath.SplitList(value) {
		if dir != "" {
			out = append(out, dir)
		}
	}
	return out
}

// Home returns the user's home directory.
func (e *Environment) Home() string {
	return e.home
}

// Interactive reports whether a human can answer prompts.
func (e *Environment) Interactive() bool {
	return e.interactive
}

// Path returns PATH as it will be seen by the next command.
func (e *Environment) Path() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return strings.Join(e.path, string(filepath.ListSeparator))
}

// HasPathDir reports whether dir is already on PATH.
func (e *Environment) HasPathDir(dir string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, d := range e.path {
		if d == dir {
			return true
		}
	}
	return false
}

// PrependPath puts dir at the front of PATH unless it is already present.
// It reports whether PATH changed.
func (e *Environment) PrependPath(dir string) bool {
	dir = ports.ExpandHome(dir, e.home)
	if dir == "" || e.HasPathDir(dir) {
		return false
	}
	e.mu.Lock()
	e.path = append([]string{dir}, e.path...)
	e.mu.Unlock()
	return true
}

// Apply pushes PATH to the underlying process environment.
func (e *Environment) Apply() error {
	return e.env.Setenv("PATH", e.Path())
}
