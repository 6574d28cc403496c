package asdf

import (
	"fmt"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
)

// PythonVersionsStep installs the newest Python minors and selects them
// globally. It has no cheap precondition; asdf skips versions it already has.
type PythonVersionsStep struct {
	provisioner Provisioner
	id          compiler.StepID
}

// NewPythonVersionsStep creates a PythonVersionsStep.
func NewPythonVersionsStep(provisioner Provisioner) *PythonVersionsStep {
	return &PythonVersionsStep{
		provisioner: provisioner,
		id:          compiler.MustNewStepID("python:versions"),
	}
}

// ID returns the step identifier.
func (s *PythonVersionsStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyAbort.
func (s *PythonVersionsStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyAbort
}

// Check always reports that provisioning must run.
func (s *PythonVersionsStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *PythonVersionsStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.NewDiff(compiler.DiffTypeAdd, "python", "asdf",
		fmt.Sprintf("newest %d minors, newest global", s.provisioner.Count())), nil
}

// Apply runs the provisioning sequence.
func (s *PythonVersionsStep) Apply(ctx compiler.RunContext) error {
	_, err := s.provisioner.Provision(ctx.Context(), ctx.Env().Interactive())
	return err
}

// ProfileEntries returns nothing; asdf.sh already exposes the shims.
func (s *PythonVersionsStep) ProfileEntries() []compiler.ProfileEntry {
	return nil
}

// Explain provides a human-readable explanation.
func (s *PythonVersionsStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"install python versions",
		fmt.Sprintf("Installs the latest patch of the %d newest Python 3 minors with asdf and makes them the global default, newest first.", s.provisioner.Count()),
		[]string{"https://github.com/asdf-community/asdf-python"},
	)
}
