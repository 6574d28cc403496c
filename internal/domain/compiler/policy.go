package compiler

// FailurePolicy tells the sequencer what to do when a step fails.
type FailurePolicy string

const (
	// PolicyAbort stops the run with a non-zero exit.
	PolicyAbort FailurePolicy = "abort"
	// PolicyWarn logs the failure and continues; the exit code is unaffected.
	PolicyWarn FailurePolicy = "warn"
)

// String returns the string representation of the policy.
func (p FailurePolicy) String() string {
	return string(p)
}

// IsFatal reports whether a failure under this policy ends the run.
func (p FailurePolicy) IsFatal() bool {
	return p != PolicyWarn
}
