package cargo

import (
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/pyprep/internal/validation"
)

// Bin is cargo's install directory.
type Bin struct {
	Dir     string
	Display string
}

// LauncherStep installs the crate that provides the py launcher.
type LauncherStep struct {
	crate    Crate
	binary   string
	bin      Bin
	id       compiler.StepID
	runner   ports.CommandRunner
	fs       ports.FileSystem
	lookPath ports.PathLookup
}

// NewLauncherStep creates a LauncherStep.
func NewLauncherStep(crate Crate, binary string, bin Bin, runner ports.CommandRunner, fs ports.FileSystem, lookPath ports.PathLookup) *LauncherStep {
	return &LauncherStep{
		crate:    crate,
		binary:   binary,
		bin:      bin,
		id:       compiler.MustNewStepID("cargo:launcher"),
		runner:   runner,
		fs:       fs,
		lookPath: lookPath,
	}
}

// ID returns the step identifier.
func (s *LauncherStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyWarn: the launcher is a convenience.
func (s *LauncherStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyWarn
}

// Check reports satisfied when the launcher is on PATH or already in
// cargo's bin directory.
func (s *LauncherStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	if _, err := s.lookPath(s.binary); err == nil {
		return compiler.StatusSatisfied, nil
	}
	if s.fs.Exists(filepath.Join(s.bin.Dir, s.binary)) {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *LauncherStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	version := s.crate.Version
	if version == "" {
		version = "latest"
	}
	return compiler.NewDiff(compiler.DiffTypeAdd, "cargo-crate", s.crate.Name, version), nil
}

// Apply runs cargo install.
func (s *LauncherStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateCargoCrate(s.crate.FullName()); err != nil {
		return fmt.Errorf("invalid cargo crate: %w", err)
	}

	cargo, err := s.cargo()
	if err != nil {
		return err
	}

	args := []string{"install", s.crate.Name}
	if s.crate.Version != "" {
		args = append(args, "--version", s.crate.Version)
	}

	_, err = commandutil.Run(ctx.Context(), s.runner, cargo, args...)
	if commandutil.IsCommandNotFound(err) {
		return fmt.Errorf("cargo is not installed (%s could not be executed); install a Rust toolchain (https://rustup.rs): %w", cargo, err)
	}
	return err
}

// cargo locates the cargo binary. rustup installs into the bin directory
// without touching the running shell's PATH.
func (s *LauncherStep) cargo() (string, error) {
	if _, err := s.lookPath("cargo"); err == nil {
		return "cargo", nil
	}
	local := filepath.Join(s.bin.Dir, "cargo")
	if s.fs.Exists(local) {
		return local, nil
	}
	return "", fmt.Errorf("cargo not found on PATH or in %s; install a Rust toolchain (https://rustup.rs) to get the %s launcher", s.bin.Display, s.binary)
}

// ProfileEntries puts cargo's bin directory on PATH.
func (s *LauncherStep) ProfileEntries() []compiler.ProfileEntry {
	return []compiler.ProfileEntry{compiler.PathEntry(s.bin.Display, s.bin.Dir)}
}

// Explain provides a human-readable explanation.
func (s *LauncherStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"install the py launcher",
		fmt.Sprintf("Installs the %s crate, which provides %q for picking an interpreter by version. Requires a Rust toolchain; a failure only warns.", s.crate.Name, s.binary),
		[]string{
			fmt.Sprintf("https://crates.io/crates/%s", s.crate.Name),
			"https://doc.rust-lang.org/cargo/commands/cargo-install.html",
		},
	)
}
