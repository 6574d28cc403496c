package pythons

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"golang.org/x/mod/semver"
)

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) (bool, error)

// Options configures a Provisioner.
type Options struct {
	Count               int
	DefaultPackages     []string
	DefaultPackagesFile string
	AssumeYes           bool
}

// Result describes what a provisioning run did.
type Result struct {
	Selected  []string
	Installed []string
	Failed    []string
	Declined  bool
}

// Provisioner installs the latest Python minors with asdf and makes them the
// global default, newest first.
type Provisioner struct {
	runner  ports.CommandRunner
	fs      ports.FileSystem
	logger  ports.Logger
	confirm Confirmer
	opts    Options
}

// NewProvisioner creates a Provisioner. confirm may be nil when the run is
// never interactive.
func NewProvisioner(runner ports.CommandRunner, fs ports.FileSystem, logger ports.Logger, confirm Confirmer, opts Options) *Provisioner {
	return &Provisioner{
		runner:  runner,
		fs:      fs,
		logger:  logger,
		confirm: confirm,
		opts:    opts,
	}
}

// Count returns how many minors are provisioned.
func (p *Provisioner) Count() int {
	return p.opts.Count
}

// EnsureDefaultPackages makes sure the asdf default-packages file lists every
// default package. Existing content is kept; only missing names are appended.
func (p *Provisioner) EnsureDefaultPackages() ([]string, error) {
	path := p.opts.DefaultPackagesFile

	existing := make(map[string]bool)
	content := ""
	data, err := p.fs.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
		for _, line := range strings.Split(content, "\n") {
			existing[strings.TrimSpace(line)] = true
		}
	case errors.Is(err, os.ErrNotExist):
		if err := p.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var added []string
	var b strings.Builder
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	for _, pkg := range p.opts.DefaultPackages {
		if existing[pkg] {
			continue
		}
		existing[pkg] = true
		added = append(added, pkg)
		b.WriteString(pkg)
		b.WriteString("\n")
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := p.fs.AppendFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return added, nil
}

// EnsurePlugin adds the asdf python plugin when it is not listed.
func (p *Provisioner) EnsurePlugin(ctx context.Context) (bool, error) {
	result, err := p.runner.Run(ctx, "asdf", "plugin", "list")
	if err == nil && result.Success() && hasLine(result.Stdout, "python") {
		return false, nil
	}

	if err := p.run(ctx, "asdf", "plugin", "add", "python"); err != nil {
		return false, err
	}
	return true, nil
}

func hasLine(output, want string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

var asdfVersionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// asdfVersion returns the installed asdf version as a semver ("v0.15.0").
func (p *Provisioner) asdfVersion(ctx context.Context) (string, error) {
	result, err := p.runner.Run(ctx, "asdf", "--version")
	if err != nil {
		return "", fmt.Errorf("%w: asdf --version: %w", bootstrap.ErrCommandFailed, err)
	}
	if !result.Success() {
		return "", fmt.Errorf("%w: asdf --version exited with %d", bootstrap.ErrCommandFailed, result.ExitCode)
	}
	m := asdfVersionPattern.FindStringSubmatch(result.Stdout)
	if m == nil {
		return "", nil
	}
	return "v" + m[1], nil
}

// Provision runs the whole sequence: default packages, plugin, discovery,
// optional confirmation, installs, and the global selection.
func (p *Provisioner) Provision(ctx context.Context, interactive bool) (*Result, error) {
	if added, err := p.EnsureDefaultPackages(); err != nil {
		return nil, err
	} else if len(added) > 0 {
		p.logger.Info(ctx, "default python packages updated",
			ports.F("file", p.opts.DefaultPackagesFile), ports.F("added", strings.Join(added, ",")))
	}

	if added, err := p.EnsurePlugin(ctx); err != nil {
		return nil, fmt.Errorf("add asdf python plugin: %w", err)
	} else if added {
		p.logger.Info(ctx, "asdf python plugin added")
	}

	asdfVersion, err := p.asdfVersion(ctx)
	if err != nil {
		return nil, err
	}

	listing, err := p.runner.Run(ctx, "asdf", "list", "all", "python")
	if err != nil || !listing.Success() {
		if err == nil {
			err = fmt.Errorf("exited with %d: %s", listing.ExitCode, listing.Output())
		}
		return nil, fmt.Errorf("%w: asdf list all python: %w", bootstrap.ErrNetwork, err)
	}

	result := &Result{Selected: Select(listing.Stdout, p.opts.Count)}
	if len(result.Selected) == 0 {
		return result, bootstrap.ErrNoPythonVersions
	}

	p.logger.Info(ctx, "python versions selected",
		ports.F("versions", strings.Join(result.Selected, ", ")), ports.F("global", result.Selected[0]))

	if interactive && !p.opts.AssumeYes && p.confirm != nil {
		ok, err := p.confirm(fmt.Sprintf("Install Python %s and make %s the global default?",
			strings.Join(result.Selected, ", "), result.Selected[0]))
		if err != nil {
			return result, fmt.Errorf("confirmation: %w", err)
		}
		if !ok {
			p.logger.Warn(ctx, "python installation cancelled")
			result.Declined = true
			return result, nil
		}
	}

	for _, version := range result.Selected {
		p.logger.Info(ctx, "installing python", ports.F("version", version))
		if err := p.run(ctx, "asdf", "install", "python", version); err != nil {
			p.logger.Warn(ctx, "python install failed", ports.F("version", version), ports.F("error", err))
			result.Failed = append(result.Failed, version)
			continue
		}
		result.Installed = append(result.Installed, version)
	}

	if len(result.Installed) == 0 {
		return result, fmt.Errorf("%w: no python version could be installed", bootstrap.ErrCommandFailed)
	}

	if err := p.run(ctx, "asdf", p.globalArgs(asdfVersion, result.Installed)...); err != nil {
		return result, fmt.Errorf("set global python: %w", err)
	}

	if listed, err := p.runner.Run(ctx, "asdf", "list", "python"); err == nil && listed.Success() {
		p.logger.Info(ctx, "installed python versions", ports.F("versions", strings.Join(strings.Fields(listed.Stdout), " ")))
	}

	return result, nil
}

// globalArgs builds the command selecting versions as the user default.
// asdf 0.16 replaced "global" with "set --home".
func (p *Provisioner) globalArgs(asdfVersion string, versions []string) []string {
	args := []string{"global", "python"}
	if asdfVersion != "" && semver.Compare(asdfVersion, "v0.16.0") >= 0 {
		args = []string{"set", "--home", "python"}
	}
	return append(args, versions...)
}

func (p *Provisioner) run(ctx context.Context, command string, args ...string) error {
	call := ports.CommandCall{Command: command, Args: args}
	result, err := p.runner.Run(ctx, command, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", bootstrap.ErrCommandFailed, call, err)
	}
	if !result.Success() {
		return fmt.Errorf("%w: %s exited with %d: %s", bootstrap.ErrCommandFailed, call, result.ExitCode, result.Output())
	}
	return nil
}
