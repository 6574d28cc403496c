package app

import (
	"strings"
	"time"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/execution"
)

// PrintPlan outputs a human-readable plan summary.
func (p *PyPrep) PrintPlan(plan *execution.Plan, verbose bool) {
	summary := plan.Summary()

	p.printf("\n%s\n", p.styles.Title("pyprep plan"))
	p.printf("Steps: %d total, %d to apply, %d satisfied, %d unknown\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied, summary.Unknown)

	explain := compiler.NewExplainContext().WithVerbose(verbose)
	for _, entry := range plan.Entries() {
		step := entry.Step()
		var mark string
		switch entry.Status() {
		case compiler.StatusSatisfied:
			mark = p.styles.Success("✓")
		case compiler.StatusUnknown:
			mark = p.styles.Warning("?")
		default:
			mark = p.styles.Info("+")
		}

		policy := ""
		if !step.Policy().IsFatal() {
			policy = p.styles.Muted(" (warn)")
		}
		p.printf("  %s %s%s\n", mark, step.ID().String(), policy)

		if diff := entry.Diff(); !diff.IsEmpty() {
			p.printf("      %s\n", diff.Summary())
		}
		if err := entry.Err(); err != nil {
			p.printf("      %s\n", p.styles.Warning(err.Error()))
		}
		if verbose {
			ex := step.Explain(explain)
			p.printf("      %s\n", p.styles.Muted(ex.Detail()))
			for _, link := range ex.DocLinks() {
				p.printf("      %s\n", p.styles.Muted(link))
			}
		}
	}

	if !plan.HasChanges() {
		p.printf("\nNo changes needed. Your system is up to date.\n")
		return
	}
	p.printf("\nRun 'pyprep' without --dry-run to apply.\n")
}

// PrintResults outputs execution results and the final instruction.
func (p *PyPrep) PrintResults(result *execution.RunResult, profilePath string) {
	p.printf("\n%s\n", p.styles.Title("pyprep results"))

	for _, r := range result.Results() {
		id := r.StepID().String()
		switch {
		case r.Status() == compiler.StatusSkipped:
			p.printf("  %s %s\n", p.styles.Muted("-"), p.styles.Muted(id+" skipped"))
		case r.Fatal():
			p.printf("  %s %s: %s\n", p.styles.Fatal("✗"), id, p.styles.Fatal(firstLine(r.Error())))
		case r.Warned():
			p.printf("  %s %s: %s\n", p.styles.Warning("!"), id, p.styles.Warning(firstLine(r.Error())))
		default:
			p.printf("  %s %s %s\n", p.styles.Success("✓"), id, p.styles.Muted(formatDuration(r.Duration())))
		}
	}

	s := result.Summary()
	p.printf("\n%d applied, %d already satisfied, %d warnings, %d failed, %d skipped\n",
		s.Applied, s.Satisfied, s.Warned, s.Failed, s.Skipped)

	if result.Aborted() {
		p.printf("%s\n", p.styles.Fatal("Bootstrap aborted."))
		return
	}

	p.printf("%s\n", p.styles.Success("Bootstrap complete."))
	p.printf("Run 'source %s' or open a new shell to pick up the changes.\n", profilePath)
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Round(100 * time.Millisecond).String()
}

func joinVersions(versions []string) string {
	return strings.Join(versions, ", ")
}
