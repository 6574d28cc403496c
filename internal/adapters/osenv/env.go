// Package osenv adapts the process environment to ports.Environment.
package osenv

import (
	"os"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Environment reads and writes the real process environment.
// Child processes started afterwards inherit any change.
type Environment struct{}

// New creates an Environment.
func New() *Environment {
	return &Environment{}
}

// Getenv returns the value of key.
func (e *Environment) Getenv(key string) string {
	return os.Getenv(key)
}

// Setenv sets key to value.
func (e *Environment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

var _ ports.Environment = (*Environment)(nil)
