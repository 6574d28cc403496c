package apt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/config"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/pyprep/internal/validation"
)

var pythonVersionPattern = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)

// BuildDepsStep installs the packages needed to compile CPython. The
// version-specific extras are chosen for the system interpreter, which is
// the one the distribution's python3-* packages target.
type BuildDepsStep struct {
	cfg           *config.Config
	ubuntuVersion string
	id            compiler.StepID
	runner        ports.CommandRunner
}

// NewBuildDepsStep creates a BuildDepsStep.
func NewBuildDepsStep(cfg *config.Config, ubuntuVersion string, runner ports.CommandRunner) *BuildDepsStep {
	return &BuildDepsStep{
		cfg:           cfg,
		ubuntuVersion: ubuntuVersion,
		id:            compiler.MustNewStepID("apt:build-deps"),
		runner:        runner,
	}
}

// ID returns the step identifier.
func (s *BuildDepsStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyAbort: without the headers no interpreter builds.
func (s *BuildDepsStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyAbort
}

// Packages returns the package set for this host.
func (s *BuildDepsStep) Packages(ctx compiler.RunContext) []string {
	return s.cfg.BuildPackagesFor(s.systemPythonVersion(ctx), s.ubuntuVersion)
}

func (s *BuildDepsStep) systemPythonVersion(ctx compiler.RunContext) string {
	result, err := s.runner.Run(ctx.Context(), s.cfg.Python.SystemCommand, "--version")
	if err != nil || !result.Success() {
		return ""
	}
	// Python 2 and early 3 print the version on stderr.
	m := pythonVersionPattern.FindStringSubmatch(result.Stdout + "\n" + result.Stderr)
	if m == nil {
		return ""
	}
	return m[1]
}

func (s *BuildDepsStep) missing(ctx compiler.RunContext) ([]string, error) {
	pkgs := s.Packages(ctx)
	args := append([]string{"-W", "-f=${Package} ${db:Status-Status}\n"}, pkgs...)

	// dpkg-query exits 1 when some packages are unknown; that is "missing",
	// not an error.
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", args...)
	if err != nil {
		return nil, fmt.Errorf("dpkg-query: %w", err)
	}

	installed := make(map[string]bool)
	for _, line := range strings.Split(result.Stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "installed" {
			name, _, _ := strings.Cut(fields[0], ":")
			installed[name] = true
		}
	}

	var out []string
	for _, pkg := range pkgs {
		if !installed[pkg] {
			out = append(out, pkg)
		}
	}
	return out, nil
}

// Check reports satisfied when every package is installed.
func (s *BuildDepsStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	missing, err := s.missing(ctx)
	if err != nil {
		return compiler.StatusUnknown, err
	}
	if len(missing) == 0 {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan lists the packages that would be installed.
func (s *BuildDepsStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	missing, err := s.missing(ctx)
	if err != nil {
		return compiler.Diff{}, err
	}
	if len(missing) == 0 {
		return compiler.NoChange("apt-packages", "build-deps"), nil
	}
	return compiler.NewDiff(compiler.DiffTypeAdd, "apt-packages", "build-deps", strings.Join(missing, " ")), nil
}

// Apply installs the missing packages.
func (s *BuildDepsStep) Apply(ctx compiler.RunContext) error {
	missing, err := s.missing(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	for _, pkg := range missing {
		if err := validation.ValidatePackageName(pkg); err != nil {
			return fmt.Errorf("invalid package name: %w", err)
		}
	}

	args := append([]string{"apt-get", "install", "-y"}, missing...)
	_, err = commandutil.Run(ctx.Context(), s.runner, "sudo", args...)
	return err
}

// ProfileEntries returns nothing.
func (s *BuildDepsStep) ProfileEntries() []compiler.ProfileEntry {
	return nil
}

// Explain provides a human-readable explanation.
func (s *BuildDepsStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"install Python build dependencies",
		"asdf compiles CPython from source; these packages provide the compiler toolchain and the headers for ssl, sqlite, readline, bz2, lzma, ffi and tk.",
		[]string{"https://github.com/pyenv/pyenv/wiki#suggested-build-environment"},
	)
}
