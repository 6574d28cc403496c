// Package app wires configuration, providers and the sequencer into the
// pyprep commands.
package app

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/felixgeelhaar/pyprep/internal/adapters/command"
	"github.com/felixgeelhaar/pyprep/internal/adapters/filesystem"
	"github.com/felixgeelhaar/pyprep/internal/adapters/github"
	"github.com/felixgeelhaar/pyprep/internal/adapters/osenv"
	"github.com/felixgeelhaar/pyprep/internal/adapters/osrelease"
	"github.com/felixgeelhaar/pyprep/internal/adapters/release"
	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/config"
	"github.com/felixgeelhaar/pyprep/internal/domain/execution"
	"github.com/felixgeelhaar/pyprep/internal/domain/pythons"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/apt"
	"github.com/felixgeelhaar/pyprep/internal/provider/asdf"
	"github.com/felixgeelhaar/pyprep/internal/provider/cargo"
	"github.com/felixgeelhaar/pyprep/internal/provider/pip"
	"github.com/felixgeelhaar/pyprep/internal/provider/pipx"
	"github.com/felixgeelhaar/pyprep/internal/provider/shell"
	"github.com/felixgeelhaar/pyprep/internal/ui"
)

// ReleaseDetector reports the running distribution.
type ReleaseDetector func() (osrelease.Release, error)

// PyPrep is the main application orchestrator.
type PyPrep struct {
	out       io.Writer
	logger    ports.Logger
	runner    ports.CommandRunner
	fs        ports.FileSystem
	env       ports.Environment
	lookPath  ports.PathLookup
	confirm   pythons.Confirmer
	styles    ui.Styles
	detect    ReleaseDetector
	newSource func(apiBase string) ports.ReleaseSource
}

// New creates a PyPrep backed by the real system.
func New(out io.Writer, logger ports.Logger) *PyPrep {
	return &PyPrep{
		out:      out,
		logger:   logger,
		runner:   command.NewRealRunner(command.WithLogger(logger)),
		fs:       filesystem.NewRealFileSystem(),
		env:      osenv.New(),
		lookPath: exec.LookPath,
		styles:   ui.NewStyles(false),
		detect: func() (osrelease.Release, error) {
			return osrelease.Detect(osrelease.DefaultPath)
		},
	}
}

// releaseSource asks the REST API first and falls back to an authenticated
// gh CLI when the anonymous rate limit is exhausted.
func (p *PyPrep) releaseSource(apiBase string) ports.ReleaseSource {
	if p.newSource != nil {
		return p.newSource(apiBase)
	}
	return release.NewChain(release.NewGitHubSource(apiBase), github.NewClient(p.runner))
}

// WithRunner sets the command runner.
func (p *PyPrep) WithRunner(runner ports.CommandRunner) *PyPrep {
	p.runner = runner
	return p
}

// WithFileSystem sets the filesystem.
func (p *PyPrep) WithFileSystem(fs ports.FileSystem) *PyPrep {
	p.fs = fs
	return p
}

// WithEnvironment sets the process environment.
func (p *PyPrep) WithEnvironment(env ports.Environment) *PyPrep {
	p.env = env
	return p
}

// WithPathLookup sets the executable lookup.
func (p *PyPrep) WithPathLookup(lookPath ports.PathLookup) *PyPrep {
	p.lookPath = lookPath
	return p
}

// WithConfirmer sets the prompt used before installing interpreters.
func (p *PyPrep) WithConfirmer(confirm pythons.Confirmer) *PyPrep {
	p.confirm = confirm
	return p
}

// WithStyles sets the output styles.
func (p *PyPrep) WithStyles(styles ui.Styles) *PyPrep {
	p.styles = styles
	return p
}

// WithReleaseDetector sets the distribution detector.
func (p *PyPrep) WithReleaseDetector(detect ReleaseDetector) *PyPrep {
	p.detect = detect
	return p
}

// WithReleaseSource makes every release lookup use source.
func (p *PyPrep) WithReleaseSource(source ports.ReleaseSource) *PyPrep {
	p.newSource = func(string) ports.ReleaseSource { return source }
	return p
}

// session is the state shared by one command invocation.
type session struct {
	cfg   *config.Config
	env   *bootstrap.Environment
	steps []compiler.Step
}

// LoadConfig reads the overlay, applies command-line overrides and
// validates the result.
func (p *PyPrep) LoadConfig(opts RunOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.Discover(p.env, p.fs)
	}
	cfg, err := config.Load(p.fs, path)
	if err != nil {
		return nil, err
	}
	if opts.ProfilePath != "" {
		cfg.ProfilePath = opts.ProfilePath
	}
	if opts.AssumeYes {
		cfg.AssumeYes = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p *PyPrep) open(ctx context.Context, opts RunOptions) (*session, error) {
	cfg, err := p.LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	env := bootstrap.NewEnvironment(p.env, opts.Interactive)
	if env.Home() == "" {
		return nil, fmt.Errorf("HOME is not set")
	}

	steps, err := p.compile(ctx, cfg, env)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, env: env, steps: steps}, nil
}

// ubuntuVersion returns the detected Ubuntu release, warning when the host
// is something else.
func (p *PyPrep) ubuntuVersion(ctx context.Context) string {
	rel, err := p.detect()
	if err != nil {
		p.logger.Warn(ctx, "could not detect the distribution; assuming a current Ubuntu", ports.F("error", err))
		return ""
	}
	if !rel.IsUbuntu() {
		p.logger.Warn(ctx, "this tool targets Ubuntu; continuing anyway", ports.F("os", rel.String()))
		return ""
	}
	p.logger.Debug(ctx, "detected distribution", ports.F("os", rel.String()))
	return rel.VersionID
}

func (p *PyPrep) provisioner(cfg *config.Config, home string) *pythons.Provisioner {
	return pythons.NewProvisioner(p.runner, p.fs, p.logger, p.confirm, pythons.Options{
		Count:               cfg.Python.Count,
		DefaultPackages:     cfg.Python.DefaultPackages,
		DefaultPackagesFile: ports.ExpandHome(cfg.Python.DefaultPackagesFile, home),
		AssumeYes:           cfg.AssumeYes,
	})
}

func (p *PyPrep) compile(ctx context.Context, cfg *config.Config, env *bootstrap.Environment) ([]compiler.Step, error) {
	home := env.Home()
	interpreter := bootstrap.NewInterpreterResolver(p.runner, p.fs,
		ports.ExpandHome(cfg.Asdf.Dir, home), cfg.Python.SystemCommand)

	comp := compiler.NewCompiler()
	comp.RegisterProvider(apt.NewProvider(p.runner))
	comp.RegisterProvider(asdf.NewProvider(p.runner, p.fs, p.releaseSource(cfg.Asdf.APIBase), p.logger, p.provisioner(cfg, home)))
	comp.RegisterProvider(cargo.NewProvider(p.runner, p.fs, p.lookPath))
	comp.RegisterProvider(pip.NewProvider(p.runner, interpreter))
	comp.RegisterProvider(pipx.NewProvider(p.runner, interpreter))

	cctx := compiler.NewCompileContext(cfg).
		WithHome(home).
		WithUbuntuVersion(p.ubuntuVersion(ctx))

	steps, err := comp.Compile(cctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}
	return steps, nil
}

// Plan checks every step without changing the system.
func (p *PyPrep) Plan(ctx context.Context, opts RunOptions) (*execution.Plan, error) {
	s, err := p.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return execution.NewPlanner(s.env).Plan(ctx, s.steps), nil
}

// Apply runs every step in order and returns the per-step results. The
// returned error is the abort cause, if any.
func (p *PyPrep) Apply(ctx context.Context, opts RunOptions) (*execution.RunResult, *config.Config, error) {
	s, err := p.open(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	profile := shell.NewProfile(p.fs, ports.ExpandHome(s.cfg.ProfilePath, s.env.Home()))
	result := execution.NewSequencer(s.env, profile, p.logger).Run(ctx, s.steps)
	return result, s.cfg, result.Err()
}

// Run is the default command: a dry-run plan or a full bootstrap, each
// followed by a report.
func (p *PyPrep) Run(ctx context.Context, opts RunOptions) error {
	if opts.DryRun {
		plan, err := p.Plan(ctx, opts)
		if err != nil {
			return err
		}
		p.PrintPlan(plan, opts.Verbose)
		return nil
	}

	result, cfg, err := p.Apply(ctx, opts)
	if result == nil {
		return err
	}
	p.PrintResults(result, cfg.ProfilePath)
	return err
}

// Pythons runs only the interpreter provisioning, for hosts where asdf is
// already installed.
func (p *PyPrep) Pythons(ctx context.Context, opts RunOptions, count int) (*pythons.Result, error) {
	cfg, err := p.LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		cfg.Python.Count = count
	}

	env := bootstrap.NewEnvironment(p.env, opts.Interactive)
	layout := asdf.NewLayout(cfg.Asdf.Dir, env.Home())
	changed := false
	for _, entry := range layout.ProfileEntries() {
		for _, dir := range entry.PathDirs {
			changed = env.PrependPath(dir) || changed
		}
	}
	if changed {
		if err := env.Apply(); err != nil {
			return nil, fmt.Errorf("update PATH: %w", err)
		}
	}

	result, err := p.provisioner(cfg, env.Home()).Provision(ctx, env.Interactive())
	if result != nil && err == nil && !result.Declined {
		p.printf("%s %s\n", p.styles.Success("Python ready:"), joinVersions(result.Installed))
	}
	return result, err
}

// ShellEnv returns the profile lines the bootstrap manages, for eval in a
// shell that has not sourced the profile yet.
func (p *PyPrep) ShellEnv(ctx context.Context, opts RunOptions) (string, error) {
	s, err := p.open(ctx, opts)
	if err != nil {
		return "", err
	}
	return shell.ShellEnv(shell.CollectEntries(s.steps)), nil
}

func (p *PyPrep) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
