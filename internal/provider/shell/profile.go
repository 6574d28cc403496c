// Package shell maintains the lines pyprep owns in the user's shell profile.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Profile is a shell startup file that is only ever appended to.
type Profile struct {
	path string
	fs   ports.FileSystem
}

// NewProfile creates a Profile for path.
func NewProfile(fs ports.FileSystem, path string) *Profile {
	return &Profile{path: path, fs: fs}
}

// Path returns the profile file path.
func (p *Profile) Path() string {
	return p.path
}

func normalize(line string) string {
	return strings.TrimRight(line, " \t\r")
}

func (p *Profile) read() (string, error) {
	data, err := p.fs.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read profile %s: %w", p.path, err)
	}
	return string(data), nil
}

func containsLine(content, line string) bool {
	want := normalize(line)
	for _, got := range strings.Split(content, "\n") {
		if normalize(got) == want {
			return true
		}
	}
	return false
}

// EnsureLine appends line unless an identical line exists. It creates the
// file and its directory when missing and reports whether it wrote anything.
func (p *Profile) EnsureLine(line string) (bool, error) {
	line = normalize(line)
	if line == "" || strings.Contains(line, "\n") {
		return false, fmt.Errorf("profile line must be a single non-empty line: %q", line)
	}

	content, err := p.read()
	if err != nil {
		return false, err
	}
	if containsLine(content, line) {
		return false, nil
	}

	if content == "" {
		if err := p.fs.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
			return false, fmt.Errorf("create profile directory: %w", err)
		}
	}

	var b strings.Builder
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(line)
	b.WriteString("\n")

	if err := p.fs.AppendFile(p.path, []byte(b.String()), 0o644); err != nil {
		return false, fmt.Errorf("append to profile %s: %w", p.path, err)
	}
	return true, nil
}

// EnsureEntries ensures every entry's line and returns the lines it added.
func (p *Profile) EnsureEntries(entries []compiler.ProfileEntry) ([]string, error) {
	var added []string
	for _, entry := range entries {
		wrote, err := p.EnsureLine(entry.Line)
		if err != nil {
			return added, err
		}
		if wrote {
			added = append(added, normalize(entry.Line))
		}
	}
	return added, nil
}
