package execution

import (
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
)

// PlanEntry is one step's state as seen by a dry run.
type PlanEntry struct {
	step   compiler.Step
	status compiler.StepStatus
	diff   compiler.Diff
	err    error
}

// NewPlanEntry creates a new PlanEntry.
func NewPlanEntry(step compiler.Step, status compiler.StepStatus, diff compiler.Diff, err error) PlanEntry {
	return PlanEntry{
		step:   step,
		status: status,
		diff:   diff,
		err:    err,
	}
}

// Step returns the planned step.
func (e PlanEntry) Step() compiler.Step {
	return e.step
}

// Status returns the current status of the step.
func (e PlanEntry) Status() compiler.StepStatus {
	return e.status
}

// Diff returns the planned change.
func (e PlanEntry) Diff() compiler.Diff {
	return e.diff
}

// Err returns the check error that made the status unknown, if any.
func (e PlanEntry) Err() error {
	return e.err
}

// PlanSummary provides aggregate statistics about a plan.
type PlanSummary struct {
	Total      int
	NeedsApply int
	Satisfied  int
	Unknown    int
}

// Plan is the ordered dry-run view of a sequence.
type Plan struct {
	entries []PlanEntry
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{entries: make([]PlanEntry, 0)}
}

// Add appends a plan entry.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns all plan entries.
func (p *Plan) Entries() []PlanEntry {
	return p.entries
}

// HasChanges returns true if any step would run its external tool.
func (p *Plan) HasChanges() bool {
	for _, e := range p.entries {
		if e.status.NeedsAction() {
			return true
		}
	}
	return false
}

// Summary returns aggregate statistics.
func (p *Plan) Summary() PlanSummary {
	summary := PlanSummary{Total: len(p.entries)}
	for _, e := range p.entries {
		switch e.status {
		case compiler.StatusNeedsApply:
			summary.NeedsApply++
		case compiler.StatusSatisfied:
			summary.Satisfied++
		case compiler.StatusUnknown:
			summary.Unknown++
		}
	}
	return summary
}
