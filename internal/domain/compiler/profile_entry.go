package compiler

import (
	"path/filepath"
	"strings"
)

// ProfileEntry is a line that must appear exactly once in the shell profile.
// PathDirs lists the directories the line adds to PATH, so the running
// process can mirror the change.
type ProfileEntry struct {
	Line     string
	PathDirs []string
}

// SourceEntry returns an entry that sources script.
func SourceEntry(script string) ProfileEntry {
	return ProfileEntry{Line: `. "` + script + `"`}
}

// PathEntry returns an entry that prepends dir to PATH. dir is written with
// a $HOME prefix, absDir is the same directory resolved for this process.
func PathEntry(dir, absDir string) ProfileEntry {
	return ProfileEntry{
		Line:     `export PATH="` + dir + `:$PATH"`,
		PathDirs: []string{absDir},
	}
}

// HomeRelative renders path the way profile lines spell it: "~/x" and paths
// under home become "$HOME/x", anything else is returned unchanged.
func HomeRelative(path, home string) string {
	if path == "~" {
		return "$HOME"
	}
	if strings.HasPrefix(path, "~/") {
		return "$HOME/" + path[2:]
	}
	if home != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(home, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
			if rel == "." {
				return "$HOME"
			}
			return "$HOME/" + rel
		}
	}
	return path
}
