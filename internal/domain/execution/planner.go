package execution

import (
	"context"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
)

// Planner checks every step without applying anything.
type Planner struct {
	env *bootstrap.Environment
}

// NewPlanner creates a new Planner.
func NewPlanner(env *bootstrap.Environment) *Planner {
	return &Planner{env: env}
}

// Plan runs each Check in order. A check error does not stop planning since
// later steps often depend on tools earlier steps would install; the entry
// is recorded as unknown instead.
func (p *Planner) Plan(ctx context.Context, steps []compiler.Step) *Plan {
	plan := NewPlan()
	rc := compiler.NewRunContext(ctx, p.env).WithDryRun(true)

	for _, step := range steps {
		status, err := step.Check(rc)
		if err != nil {
			plan.Add(NewPlanEntry(step, compiler.StatusUnknown, compiler.Diff{}, err))
			continue
		}

		var diff compiler.Diff
		if status.NeedsAction() {
			diff, err = step.Plan(rc)
		}
		plan.Add(NewPlanEntry(step, status, diff, err))
	}

	return plan
}
