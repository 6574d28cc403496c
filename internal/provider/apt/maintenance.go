package apt

import (
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/commandutil"
)

// Maintenance is an apt-get housekeeping action.
type Maintenance struct {
	Action  string
	Args    []string
	Summary string
	Detail  string
}

// Housekeeping actions run before the build dependencies.
var (
	Update = Maintenance{
		Action:  "update",
		Args:    []string{"apt-get", "update"},
		Summary: "refresh apt package index",
		Detail:  "Downloads the package lists so the following installs see current versions. A failing secondary source is not fatal.",
	}
	Upgrade = Maintenance{
		Action:  "upgrade",
		Args:    []string{"apt-get", "upgrade", "-y"},
		Summary: "upgrade installed packages",
		Detail:  "Upgrades installed OS packages. Failures are reported and the run continues.",
	}
	Autoremove = Maintenance{
		Action:  "autoremove",
		Args:    []string{"apt-get", "autoremove", "-y"},
		Summary: "remove unused packages",
		Detail:  "Removes packages that were installed as dependencies and are no longer needed.",
	}
)

// MaintenanceStep runs one housekeeping action. It has no precondition, so
// it always applies, and its failures never abort the run.
type MaintenanceStep struct {
	action Maintenance
	id     compiler.StepID
	runner ports.CommandRunner
}

// NewMaintenanceStep creates a MaintenanceStep.
func NewMaintenanceStep(action Maintenance, runner ports.CommandRunner) *MaintenanceStep {
	return &MaintenanceStep{
		action: action,
		id:     compiler.MustNewStepID("apt:" + action.Action),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *MaintenanceStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyWarn.
func (s *MaintenanceStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyWarn
}

// Check always reports that the action needs to run.
func (s *MaintenanceStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *MaintenanceStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.NewDiff(compiler.DiffTypeModify, "apt", s.action.Action, "sudo "+strings.Join(s.action.Args, " ")), nil
}

// Apply runs the action through sudo.
func (s *MaintenanceStep) Apply(ctx compiler.RunContext) error {
	_, err := commandutil.Run(ctx.Context(), s.runner, "sudo", s.action.Args...)
	return err
}

// ProfileEntries returns nothing; apt writes no profile lines.
func (s *MaintenanceStep) ProfileEntries() []compiler.ProfileEntry {
	return nil
}

// Explain provides a human-readable explanation.
func (s *MaintenanceStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(s.action.Summary, s.action.Detail, nil)
}
