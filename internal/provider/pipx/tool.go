package pipx

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/pyprep/internal/provider/pip"
	"github.com/felixgeelhaar/pyprep/internal/validation"
)

// ToolStep installs one tool with pipx.
type ToolStep struct {
	tool        pip.Package
	interpreter pip.Interpreter
	id          compiler.StepID
	runner      ports.CommandRunner
}

// NewToolStep creates a ToolStep. The step ID uses the tool name without
// its version specifier.
func NewToolStep(tool pip.Package, interpreter pip.Interpreter, runner ports.CommandRunner) (*ToolStep, error) {
	id, err := compiler.NewStepID("pipx:tool:" + tool.NormalizedName())
	if err != nil {
		return nil, fmt.Errorf("pipx tool %q: %w", tool.FullName(), err)
	}
	return &ToolStep{
		tool:        tool,
		interpreter: interpreter,
		id:          id,
		runner:      runner,
	}, nil
}

// ID returns the step identifier.
func (s *ToolStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyWarn: one missing tool does not spoil the others.
func (s *ToolStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyWarn
}

// Check looks the tool up in "pipx list --short".
func (s *ToolStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	py := s.interpreter.Resolve(ctx.Context()).Path
	result, err := s.runner.Run(ctx.Context(), py, "-m", "pipx", "list", "--short")
	if err != nil {
		return compiler.StatusUnknown, fmt.Errorf("pipx list: %w", err)
	}
	if !result.Success() {
		return compiler.StatusNeedsApply, nil
	}
	if Installed(result.Stdout, s.tool.Name) {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Installed reports whether "pipx list --short" output lists name. Lines
// read "<package> <version>".
func Installed(output, name string) bool {
	want := pip.NormalizeName(name)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && pip.NormalizeName(fields[0]) == want {
			return true
		}
	}
	return false
}

// Plan returns the diff for this step.
func (s *ToolStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	version := s.tool.Version
	if version == "" {
		version = "latest"
	}
	return compiler.NewDiff(compiler.DiffTypeAdd, "pipx-tool", s.tool.Name, version), nil
}

// Apply runs pipx install.
func (s *ToolStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidatePipPackage(s.tool.FullName()); err != nil {
		return fmt.Errorf("invalid pipx tool: %w", err)
	}
	py := s.interpreter.Resolve(ctx.Context()).Path
	_, err := commandutil.Run(ctx.Context(), s.runner, py, "-m", "pipx", "install", s.tool.FullName())
	return err
}

// ProfileEntries returns nothing; pipx links into ~/.local/bin, which the
// pip bootstrap already adds.
func (s *ToolStep) ProfileEntries() []compiler.ProfileEntry {
	return nil
}

// Explain provides a human-readable explanation.
func (s *ToolStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"install "+s.tool.Name,
		fmt.Sprintf("Installs %s into its own virtual environment with pipx and links its commands into ~/.local/bin.", s.tool.FullName()),
		[]string{fmt.Sprintf("https://pypi.org/project/%s/", s.tool.Name)},
	)
}
