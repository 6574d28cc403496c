// Package compiler defines the step model and turns configuration into the
// ordered list of steps the sequencer runs.
package compiler

import (
	"errors"
	"fmt"
)

// Compiler collects steps from providers in registration order.
type Compiler struct {
	providers []Provider
}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		providers: make([]Provider, 0),
	}
}

// RegisterProvider adds a provider. Registration order is run order.
func (c *Compiler) RegisterProvider(provider Provider) {
	c.providers = append(c.providers, provider)
}

// Providers returns all registered providers.
func (c *Compiler) Providers() []Provider {
	return c.providers
}

// Compile returns every provider's steps, in order. Duplicate step IDs are
// rejected so each step has one authoritative definition.
func (c *Compiler) Compile(ctx CompileContext) ([]Step, error) {
	var steps []Step
	seen := make(map[string]string)

	for _, provider := range c.providers {
		provided, err := provider.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", provider.Name(), err)
		}
		for _, step := range provided {
			id := step.ID().String()
			if owner, dup := seen[id]; dup {
				return nil, fmt.Errorf("provider %q, step %q: %w (already defined by %q)",
					provider.Name(), id, ErrDuplicateStep, owner)
			}
			seen[id] = provider.Name()
			steps = append(steps, step)
		}
	}

	return steps, nil
}

// ErrDuplicateStep is returned when two steps share an ID.
var ErrDuplicateStep = errors.New("duplicate step ID")
