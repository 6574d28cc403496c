// Package execution runs the ordered bootstrap steps and plans dry runs.
package execution

import (
	"time"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
)

// StepResult captures the outcome of a single step.
type StepResult struct {
	stepID       compiler.StepID
	policy       compiler.FailurePolicy
	status       compiler.StepStatus
	err          error
	duration     time.Duration
	diff         compiler.Diff
	profileLines []string
}

// NewStepResult creates a new StepResult.
func NewStepResult(step compiler.Step, status compiler.StepStatus, err error) StepResult {
	return StepResult{
		stepID: step.ID(),
		policy: step.Policy(),
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step.
func (r StepResult) StepID() compiler.StepID {
	return r.stepID
}

// Policy returns the failure policy the step ran under.
func (r StepResult) Policy() compiler.FailurePolicy {
	return r.policy
}

// Status returns the final status of the step.
func (r StepResult) Status() compiler.StepStatus {
	return r.status
}

// Error returns the failure, if any.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the change that was applied, if any.
func (r StepResult) Diff() compiler.Diff {
	return r.diff
}

// ProfileLines returns the profile lines this step appended.
func (r StepResult) ProfileLines() []string {
	return r.profileLines
}

// Success returns true if the step's effect holds after the run.
func (r StepResult) Success() bool {
	return r.status == compiler.StatusSatisfied || r.status == compiler.StatusApplied
}

// Warned returns true if the step failed under the warn policy.
func (r StepResult) Warned() bool {
	return r.status == compiler.StatusFailed && !r.policy.IsFatal()
}

// Fatal returns true if the step failed under the abort policy.
func (r StepResult) Fatal() bool {
	return r.status == compiler.StatusFailed && r.policy.IsFatal()
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a new StepResult with diff set.
func (r StepResult) WithDiff(d compiler.Diff) StepResult {
	r.diff = d
	return r
}

// WithProfileLines returns a new StepResult recording appended profile lines.
func (r StepResult) WithProfileLines(lines []string) StepResult {
	r.profileLines = lines
	return r
}
