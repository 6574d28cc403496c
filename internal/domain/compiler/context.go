package compiler

import (
	"context"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
)

// RunContext provides context for step execution (Check, Plan, Apply).
type RunContext struct {
	ctx    context.Context
	dryRun bool
	env    *bootstrap.Environment
}

// NewRunContext creates a new RunContext.
func NewRunContext(ctx context.Context, env *bootstrap.Environment) RunContext {
	return RunContext{
		ctx: ctx,
		env: env,
	}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// DryRun returns whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// Env returns the run environment.
func (r RunContext) Env() *bootstrap.Environment {
	return r.env
}

// WithDryRun returns a new RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	next := r
	next.dryRun = dryRun
	return next
}

// ExplainContext provides context for generating step explanations.
type ExplainContext struct {
	verbose bool
}

// NewExplainContext creates a new ExplainContext.
func NewExplainContext() ExplainContext {
	return ExplainContext{}
}

// Verbose returns whether verbose explanations are requested.
func (e ExplainContext) Verbose() bool {
	return e.verbose
}

// WithVerbose returns a new ExplainContext with verbose mode set.
func (e ExplainContext) WithVerbose(verbose bool) ExplainContext {
	e.verbose = verbose
	return e
}
