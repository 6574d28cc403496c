// Package pipx installs Python command-line tools into isolated
// environments with pipx.
package pipx

import (
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/pip"
)

// Provider compiles one step per configured tool.
type Provider struct {
	runner      ports.CommandRunner
	interpreter pip.Interpreter
}

// NewProvider creates a new pipx provider.
func NewProvider(runner ports.CommandRunner, interpreter pip.Interpreter) *Provider {
	return &Provider{runner: runner, interpreter: interpreter}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "pipx"
}

// Compile returns the tool steps in configuration order.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	tools := ctx.Config().Pipx.Tools
	steps := make([]compiler.Step, 0, len(tools))
	for _, tool := range tools {
		step, err := NewToolStep(pip.ParsePackage(tool), p.interpreter, p.runner)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
