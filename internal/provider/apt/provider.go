// Package apt provides the OS package steps: index refresh, upgrade,
// autoremove and the interpreter build dependencies.
package apt

import (
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Provider compiles the apt steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new apt provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "apt"
}

// Compile returns the apt steps in run order.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config()
	return []compiler.Step{
		NewMaintenanceStep(Update, p.runner),
		NewMaintenanceStep(Upgrade, p.runner),
		NewMaintenanceStep(Autoremove, p.runner),
		NewBuildDepsStep(cfg, ctx.UbuntuVersion(), p.runner),
	}, nil
}
