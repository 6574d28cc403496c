package compiler

// StepStatus represents the current state of a step.
type StepStatus string

const (
	// StatusSatisfied means the effect already holds; Apply is skipped.
	StatusSatisfied StepStatus = "satisfied"
	// StatusNeedsApply means Apply must run.
	StatusNeedsApply StepStatus = "needs-apply"
	// StatusUnknown means Check could not tell.
	StatusUnknown StepStatus = "unknown"
	// StatusApplied means Apply ran successfully.
	StatusApplied StepStatus = "applied"
	// StatusFailed means Check or Apply failed.
	StatusFailed StepStatus = "failed"
	// StatusSkipped means the run aborted before the step.
	StatusSkipped StepStatus = "skipped"
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}

// NeedsAction returns true if Apply has to run.
func (s StepStatus) NeedsAction() bool {
	switch s {
	case StatusNeedsApply, StatusUnknown:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if this status represents a final state.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StatusSatisfied, StatusApplied, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}
