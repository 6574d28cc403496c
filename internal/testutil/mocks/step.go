package mocks

import (
	"errors"
	"sync"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
)

// Step is a configurable compiler.Step that records how it was driven.
type Step struct {
	id       compiler.StepID
	policy   compiler.FailurePolicy
	status   compiler.StepStatus
	checkErr error
	applyErr error
	entries  []compiler.ProfileEntry
	onApply  func(compiler.RunContext)

	mu      sync.Mutex
	checks  int
	applies int
}

// NewStep creates a Step that needs applying and succeeds.
func NewStep(id string, policy compiler.FailurePolicy) *Step {
	return &Step{
		id:     compiler.MustNewStepID(id),
		policy: policy,
		status: compiler.StatusNeedsApply,
	}
}

// Satisfied makes Check report the effect already holds.
func (s *Step) Satisfied() *Step {
	s.status = compiler.StatusSatisfied
	return s
}

// FailCheck makes Check return err.
func (s *Step) FailCheck(err error) *Step {
	s.checkErr = err
	return s
}

// FailApply makes Apply return err.
func (s *Step) FailApply(err error) *Step {
	s.applyErr = err
	return s
}

// WithEntries sets the profile entries the step owns.
func (s *Step) WithEntries(entries ...compiler.ProfileEntry) *Step {
	s.entries = entries
	return s
}

// OnApply registers a hook run during a successful Apply.
func (s *Step) OnApply(fn func(compiler.RunContext)) *Step {
	s.onApply = fn
	return s
}

// ID returns the step ID.
func (s *Step) ID() compiler.StepID { return s.id }

// Policy returns the failure policy.
func (s *Step) Policy() compiler.FailurePolicy { return s.policy }

// Check records the call and returns the configured status.
func (s *Step) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	s.mu.Lock()
	s.checks++
	s.mu.Unlock()
	if s.checkErr != nil {
		return compiler.StatusUnknown, s.checkErr
	}
	return s.status, nil
}

// Plan returns an add diff unless satisfied.
func (s *Step) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	if s.status == compiler.StatusSatisfied {
		return compiler.NoChange("mock", s.id.String()), nil
	}
	return compiler.NewDiff(compiler.DiffTypeAdd, "mock", s.id.String(), ""), nil
}

// Apply records the call and returns the configured error.
func (s *Step) Apply(ctx compiler.RunContext) error {
	s.mu.Lock()
	s.applies++
	s.mu.Unlock()
	if s.applyErr != nil {
		return s.applyErr
	}
	if s.onApply != nil {
		s.onApply(ctx)
	}
	return nil
}

// ProfileEntries returns the configured entries.
func (s *Step) ProfileEntries() []compiler.ProfileEntry { return s.entries }

// Explain returns a fixed explanation.
func (s *Step) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation("mock step "+s.id.String(), "", nil)
}

// Checks returns how many times Check ran.
func (s *Step) Checks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}

// Applies returns how many times Apply ran.
func (s *Step) Applies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applies
}

// ErrStepFailed is a convenience error for failing mock steps.
var ErrStepFailed = errors.New("mock step failed")

var _ compiler.Step = (*Step)(nil)
