// Package asdf installs the asdf version manager and provisions Python
// interpreters through it.
package asdf

import (
	"context"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/pythons"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Provisioner installs the interpreters once asdf is present.
type Provisioner interface {
	Provision(ctx context.Context, interactive bool) (*pythons.Result, error)
	Count() int
}

// Provider compiles the asdf checkout and interpreter steps.
type Provider struct {
	runner      ports.CommandRunner
	fs          ports.FileSystem
	source      ports.ReleaseSource
	logger      ports.Logger
	provisioner Provisioner
}

// NewProvider creates a new asdf provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem, source ports.ReleaseSource, logger ports.Logger, provisioner Provisioner) *Provider {
	return &Provider{
		runner:      runner,
		fs:          fs,
		source:      source,
		logger:      logger,
		provisioner: provisioner,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "asdf"
}

// Compile returns the install step followed by the interpreter step.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	cfg := ctx.Config().Asdf

	resolver := bootstrap.NewVersionResolver(p.source, cfg.ReleaseRepo, cfg.FallbackTag, p.logger).
		WithCeiling(cfg.BelowTag)

	layout := NewLayout(cfg.Dir, ctx.Home())

	return []compiler.Step{
		NewInstallStep(cfg.Repo, layout, resolver, p.runner, p.fs),
		NewPythonVersionsStep(p.provisioner),
	}, nil
}
