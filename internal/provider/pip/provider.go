package pip

import (
	"context"
	"path/filepath"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Interpreter resolves the Python used to run pip. It is consulted at every
// Check and Apply since earlier steps may have installed a new one.
type Interpreter interface {
	Resolve(ctx context.Context) bootstrap.ToolBinaryLocation
}

// UserBin is pip's --user script directory.
type UserBin struct {
	Dir     string
	Display string
}

// NewUserBin returns ~/.local/bin for home.
func NewUserBin(home string) UserBin {
	return UserBin{Dir: filepath.Join(home, ".local", "bin"), Display: "$HOME/.local/bin"}
}

// Provider compiles the pip bootstrap step.
type Provider struct {
	runner      ports.CommandRunner
	interpreter Interpreter
}

// NewProvider creates a new pip provider.
func NewProvider(runner ports.CommandRunner, interpreter Interpreter) *Provider {
	return &Provider{runner: runner, interpreter: interpreter}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "pip"
}

// Compile returns the bootstrap step.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	return []compiler.Step{
		NewBootstrapStep(p.interpreter, NewUserBin(ctx.Home()), p.runner),
	}, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
