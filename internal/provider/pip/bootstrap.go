package pip

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/commandutil"
)

// BootstrapStep upgrades pip and installs pipx into the user site of the
// resolved interpreter.
type BootstrapStep struct {
	interpreter Interpreter
	bin         UserBin
	id          compiler.StepID
	runner      ports.CommandRunner
}

// NewBootstrapStep creates a BootstrapStep.
func NewBootstrapStep(interpreter Interpreter, bin UserBin, runner ports.CommandRunner) *BootstrapStep {
	return &BootstrapStep{
		interpreter: interpreter,
		bin:         bin,
		id:          compiler.MustNewStepID("pip:bootstrap"),
		runner:      runner,
	}
}

// ID returns the step identifier.
func (s *BootstrapStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyAbort: the tool installs need pipx.
func (s *BootstrapStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyAbort
}

// Check reports satisfied when both pip and pipx answer for the interpreter.
func (s *BootstrapStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	py := s.interpreter.Resolve(ctx.Context()).Path
	for _, module := range []string{"pip", "pipx"} {
		result, err := s.runner.Run(ctx.Context(), py, "-m", module, "--version")
		if err != nil || !result.Success() {
			return compiler.StatusNeedsApply, nil
		}
	}
	return compiler.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *BootstrapStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	loc := s.interpreter.Resolve(ctx.Context())
	return compiler.NewDiff(compiler.DiffTypeAdd, "pip", "pip pipx", fmt.Sprintf("%s interpreter %s", loc.Source, loc.Path)), nil
}

// Apply installs pip and pipx with --user.
func (s *BootstrapStep) Apply(ctx compiler.RunContext) error {
	py := s.interpreter.Resolve(ctx.Context()).Path
	result, err := commandutil.Run(ctx.Context(), s.runner, py, "-m", "pip", "install", "--user", "--upgrade", "pip", "pipx")
	if commandutil.IsCommandNotFound(err) {
		return fmt.Errorf("python interpreter %s is not installed (sudo apt-get install python3): %w", py, err)
	}
	if err != nil && strings.Contains(result.Output(), "externally-managed-environment") {
		return fmt.Errorf("%w (the system interpreter refuses user installs; install a Python with asdf first)", err)
	}
	return err
}

// ProfileEntries puts the --user script directory on PATH.
func (s *BootstrapStep) ProfileEntries() []compiler.ProfileEntry {
	return []compiler.ProfileEntry{compiler.PathEntry(s.bin.Display, s.bin.Dir)}
}

// Explain provides a human-readable explanation.
func (s *BootstrapStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"bootstrap pip and pipx",
		"Upgrades pip and installs pipx into the user site of the asdf-selected interpreter, or python3 when asdf has none.",
		[]string{"https://pipx.pypa.io/stable/installation/"},
	)
}
