package asdf

import (
	"path/filepath"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Layout is the asdf checkout location in both spellings: resolved for this
// process and $HOME-relative for the profile.
type Layout struct {
	Dir     string
	Display string
}

// NewLayout resolves dir ("~/.asdf") against home.
func NewLayout(dir, home string) Layout {
	return Layout{
		Dir:     ports.ExpandHome(dir, home),
		Display: compiler.HomeRelative(dir, home),
	}
}

// Script is the file sourced to put asdf in the shell.
func (l Layout) Script() string {
	return filepath.Join(l.Dir, "asdf.sh")
}

// ProfileEntries returns the lines that load asdf: the sourcing script, bash
// completions, and the bin directory on PATH.
func (l Layout) ProfileEntries() []compiler.ProfileEntry {
	script := compiler.SourceEntry(l.Display + "/asdf.sh")
	// asdf.sh puts the shims first on PATH; mirror it for this process.
	script.PathDirs = []string{filepath.Join(l.Dir, "shims")}

	return []compiler.ProfileEntry{
		script,
		compiler.SourceEntry(l.Display + "/completions/asdf.bash"),
		compiler.PathEntry(l.Display+"/bin", filepath.Join(l.Dir, "bin")),
	}
}
