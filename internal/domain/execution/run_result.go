package execution

import "github.com/felixgeelhaar/pyprep/internal/domain/compiler"

// RunSummary counts step outcomes.
type RunSummary struct {
	Total     int
	Applied   int
	Satisfied int
	Warned    int
	Failed    int
	Skipped   int
}

// RunResult is the outcome of a whole sequence.
type RunResult struct {
	results []StepResult
	aborted bool
	err     error
}

// Results returns one result per step, in run order. Steps after an abort
// are reported as skipped.
func (r *RunResult) Results() []StepResult {
	return r.results
}

// Aborted reports whether a fatal failure or cancellation ended the run.
func (r *RunResult) Aborted() bool {
	return r.aborted
}

// Err returns the error that aborted the run, or nil.
func (r *RunResult) Err() error {
	return r.err
}

// ProfileLines returns every profile line appended during the run.
func (r *RunResult) ProfileLines() []string {
	var out []string
	for _, res := range r.results {
		out = append(out, res.ProfileLines()...)
	}
	return out
}

// Summary returns aggregate counts.
func (r *RunResult) Summary() RunSummary {
	s := RunSummary{Total: len(r.results)}
	for _, res := range r.results {
		switch {
		case res.Status() == compiler.StatusApplied:
			s.Applied++
		case res.Status() == compiler.StatusSatisfied:
			s.Satisfied++
		case res.Warned():
			s.Warned++
		case res.Fatal():
			s.Failed++
		case res.Status() == compiler.StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

func (r *RunResult) add(res StepResult) {
	r.results = append(r.results, res)
}

func (r *RunResult) abort(err error, remaining []compiler.Step) {
	r.aborted = true
	r.err = err
	for _, step := range remaining {
		r.add(NewStepResult(step, compiler.StatusSkipped, nil))
	}
}
