// Package cargo installs the py launcher from crates.io.
package cargo

import (
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Crate is a crates.io package with an optional pinned version.
type Crate struct {
	Name    string
	Version string
}

// ParseCrate parses "crate" or "crate@version".
func ParseCrate(s string) Crate {
	if at := strings.LastIndex(s, "@"); at > 0 {
		return Crate{Name: s[:at], Version: s[at+1:]}
	}
	return Crate{Name: s}
}

// FullName returns the crate name with optional version.
func (c Crate) FullName() string {
	if c.Version != "" {
		return c.Name + "@" + c.Version
	}
	return c.Name
}

// Provider compiles the launcher step.
type Provider struct {
	runner   ports.CommandRunner
	fs       ports.FileSystem
	lookPath ports.PathLookup
}

// NewProvider creates a new cargo provider. lookPath resolves executables
// against the current PATH.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem, lookPath ports.PathLookup) *Provider {
	return &Provider{
		runner:   runner,
		fs:       fs,
		lookPath: lookPath,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "cargo"
}

// Compile returns the launcher step.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config().Launcher
	bin := Bin{
		Dir:     filepath.Join(ctx.Home(), ".cargo", "bin"),
		Display: "$HOME/.cargo/bin",
	}
	return []compiler.Step{
		NewLauncherStep(ParseCrate(cfg.Crate), cfg.Binary, bin, p.runner, p.fs, p.lookPath),
	}, nil
}
