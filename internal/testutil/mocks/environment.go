package mocks

import (
	"sync"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Environment is an in-memory ports.Environment.
type Environment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewEnvironment creates an Environment seeded with vars.
func NewEnvironment(vars map[string]string) *Environment {
	e := &Environment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// Getenv returns the value of key, or "".
func (e *Environment) Getenv(key string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vars[key]
}

// Setenv sets key to value.
func (e *Environment) Setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
	return nil
}

var _ ports.Environment = (*Environment)(nil)
