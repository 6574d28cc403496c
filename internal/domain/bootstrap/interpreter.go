package bootstrap

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// InterpreterSource records where a ToolBinaryLocation came from.
type InterpreterSource string

const (
	// SourceAsdf is the interpreter selected by "asdf current python".
	SourceAsdf InterpreterSource = "asdf"
	// SourceSystem is the bare system interpreter command.
	SourceSystem InterpreterSource = "system"
)

// ToolBinaryLocation is a resolved interpreter.
type ToolBinaryLocation struct {
	Path    string
	Version string
	Source  InterpreterSource
}

// InterpreterResolver finds the Python to use for pip and pipx. Callers
// resolve again at every use since earlier steps may have installed one.
type InterpreterResolver struct {
	runner       ports.CommandRunner
	fs           ports.FileSystem
	asdfDir      string
	systemPython string
}

// NewInterpreterResolver creates an InterpreterResolver.
func NewInterpreterResolver(runner ports.CommandRunner, fs ports.FileSystem, asdfDir, systemPython string) *InterpreterResolver {
	return &InterpreterResolver{
		runner:       runner,
		fs:           fs,
		asdfDir:      asdfDir,
		systemPython: systemPython,
	}
}

// Resolve returns the asdf-selected interpreter when its binary exists,
// otherwise the system command.
func (r *InterpreterResolver) Resolve(ctx context.Context) ToolBinaryLocation {
	system := ToolBinaryLocation{Path: r.systemPython, Source: SourceSystem}

	result, err := r.runner.Run(ctx, "asdf", "current", "python")
	if err != nil || !result.Success() {
		return system
	}

	version := ParseAsdfCurrent(result.Stdout)
	if version == "" {
		return system
	}

	path := filepath.Join(r.asdfDir, "installs", "python", version, "bin", "python")
	if !r.fs.Exists(path) {
		return system
	}

	return ToolBinaryLocation{Path: path, Version: version, Source: SourceAsdf}
}

// ParseAsdfCurrent extracts the first selected version from "asdf current
// python". It accepts the 0.15 layout ("python 3.13.1 /home/u/.tool-versions")
// and the 0.16 table with a "Name Version Source Installed" header. Several
// selected versions are space separated in 0.15; the first one wins.
func ParseAsdfCurrent(output string) string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "python" {
			continue
		}
		version := fields[1]
		if version == "______" || strings.HasPrefix(version, "No") || version == "system" {
			return ""
		}
		if version[0] < '0' || version[0] > '9' {
			return ""
		}
		return version
	}
	return ""
}
