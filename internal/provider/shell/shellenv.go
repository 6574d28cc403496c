package shell

import (
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
)

// ShellEnv renders entries for `eval "$(pyprep shellenv)"`, one line each,
// dropping duplicates and keeping first-seen order.
func ShellEnv(entries []compiler.ProfileEntry) string {
	var b strings.Builder
	seen := make(map[string]bool)
	for _, entry := range entries {
		line := normalize(entry.Line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// CollectEntries gathers the profile entries of steps in run order.
func CollectEntries(steps []compiler.Step) []compiler.ProfileEntry {
	var out []compiler.ProfileEntry
	for _, step := range steps {
		out = append(out, step.ProfileEntries()...)
	}
	return out
}
