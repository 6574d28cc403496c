package compiler

// Step is one idempotent stage of the bootstrap sequence.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Policy decides whether a failure aborts the run.
	Policy() FailurePolicy

	// Check determines whether the step's effect already holds.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the change Apply would make.
	Plan(ctx RunContext) (Diff, error)

	// Apply invokes the external tool. Running it again must be harmless.
	Apply(ctx RunContext) error

	// ProfileEntries returns the shell profile lines this step owns. They are
	// ensured whether Apply ran or the step was already satisfied.
	ProfileEntries() []ProfileEntry

	// Explain returns human-readable context for this step.
	Explain(ctx ExplainContext) Explanation
}
