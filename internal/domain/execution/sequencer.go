package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// ProfileWriter appends profile entries that are not yet present.
type ProfileWriter interface {
	EnsureEntries(entries []compiler.ProfileEntry) ([]string, error)
}

// Sequencer runs steps strictly in order. A failing abort step stops the run;
// a failing warn step is logged and the run continues.
type Sequencer struct {
	env     *bootstrap.Environment
	profile ProfileWriter
	logger  ports.Logger
}

// NewSequencer creates a Sequencer.
func NewSequencer(env *bootstrap.Environment, profile ProfileWriter, logger ports.Logger) *Sequencer {
	return &Sequencer{
		env:     env,
		profile: profile,
		logger:  logger,
	}
}

// Run executes steps in order and reports the outcome of each.
func (s *Sequencer) Run(ctx context.Context, steps []compiler.Step) *RunResult {
	result := &RunResult{}
	rc := compiler.NewRunContext(ctx, s.env)

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			s.logger.Error(ctx, "run cancelled", ports.F("step", step.ID().String()), ports.F("error", err))
			result.abort(fmt.Errorf("cancelled before %s: %w", step.ID(), err), steps[i:])
			break
		}

		log := s.logger.With(ports.F("step", step.ID().String()))
		log.Info(ctx, "starting "+step.Explain(compiler.NewExplainContext()).Summary())

		start := time.Now()
		res := s.runStep(rc, log, step).WithDuration(time.Since(start))
		result.add(res)

		switch {
		case res.Fatal():
			log.Error(ctx, "fatal: step failed, aborting", ports.F("error", res.Error()))
			result.abort(fmt.Errorf("%s: %w", step.ID(), res.Error()), steps[i+1:])
		case res.Warned():
			log.Warn(ctx, "step failed, continuing", ports.F("error", res.Error()))
		default:
			log.Info(ctx, "done", ports.F("status", res.Status().String()),
				ports.F("duration", res.Duration().Round(time.Millisecond).String()))
		}

		if result.Aborted() {
			break
		}
	}

	return result
}

func (s *Sequencer) runStep(rc compiler.RunContext, log ports.Logger, step compiler.Step) StepResult {
	ctx := rc.Context()

	status, err := step.Check(rc)
	if err != nil {
		if step.Policy().IsFatal() {
			return NewStepResult(step, compiler.StatusFailed, fmt.Errorf("check: %w", err))
		}
		log.Warn(ctx, "check failed, applying anyway", ports.F("error", err))
		status = compiler.StatusNeedsApply
	}

	if status == compiler.StatusSatisfied {
		log.Debug(ctx, "already satisfied, skipping apply")
		lines, err := s.ensureProfile(rc, step)
		if err != nil {
			return NewStepResult(step, compiler.StatusFailed, err)
		}
		return NewStepResult(step, compiler.StatusSatisfied, nil).WithProfileLines(lines)
	}

	diff, err := step.Plan(rc)
	if err != nil {
		log.Debug(ctx, "plan unavailable", ports.F("error", err))
	}

	if err := step.Apply(rc); err != nil {
		res := NewStepResult(step, compiler.StatusFailed, err).WithDiff(diff)
		if step.Policy().IsFatal() {
			return res
		}
		// Optional steps still get their profile lines.
		lines, perr := s.ensureProfile(rc, step)
		if perr != nil {
			log.Warn(ctx, "profile not updated", ports.F("error", perr))
		}
		return res.WithProfileLines(lines)
	}

	lines, err := s.ensureProfile(rc, step)
	if err != nil {
		return NewStepResult(step, compiler.StatusFailed, err).WithDiff(diff)
	}
	return NewStepResult(step, compiler.StatusApplied, nil).WithDiff(diff).WithProfileLines(lines)
}

// ensureProfile writes the step's profile lines and mirrors their PATH
// changes into this process so later steps find the new binaries.
func (s *Sequencer) ensureProfile(rc compiler.RunContext, step compiler.Step) ([]string, error) {
	entries := step.ProfileEntries()
	if len(entries) == 0 {
		return nil, nil
	}

	added, err := s.profile.EnsureEntries(entries)
	if err != nil {
		return added, fmt.Errorf("update shell profile: %w", err)
	}
	for _, line := range added {
		s.logger.Info(rc.Context(), "profile updated", ports.F("line", line))
	}

	changed := false
	for _, entry := range entries {
		for _, dir := range entry.PathDirs {
			if s.env.PrependPath(dir) {
				changed = true
			}
		}
	}
	if changed {
		if err := s.env.Apply(); err != nil {
			return added, fmt.Errorf("update PATH: %w", err)
		}
	}
	return added, nil
}
