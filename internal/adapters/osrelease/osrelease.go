// Package osrelease reads the distribution identity from /etc/os-release.
package osrelease

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultPath is the systemd-standard location of the os-release file.
const DefaultPath = "/etc/os-release"

// Release identifies the running distribution.
type Release struct {
	ID        string
	VersionID string
	Codename  string
	Pretty    string
}

// IsUbuntu reports whether the release is Ubuntu.
func (r Release) IsUbuntu() bool {
	return r.ID == "ubuntu"
}

// AtLeast reports whether VersionID (e.g. "24.04") is at least major.minor.
// Unparseable versions compare as older.
func (r Release) AtLeast(major, minor int) bool {
	gotMajor, gotMinor, ok := splitVersion(r.VersionID)
	if !ok {
		return false
	}
	if gotMajor != major {
		return gotMajor > major
	}
	return gotMinor >= minor
}

// String returns a readable description of the release.
func (r Release) String() string {
	if r.Pretty != "" {
		return r.Pretty
	}
	return strings.TrimSpace(r.ID + " " + r.VersionID)
}

// Parse reads os-release content.
func Parse(data []byte) (Release, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return Release{}, fmt.Errorf("parse os-release: %w", err)
	}
	return fromFile(cfg), nil
}

// Detect reads and parses the os-release file at path.
func Detect(path string) (Release, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return Release{}, fmt.Errorf("read %s: %w", path, err)
	}
	return fromFile(cfg), nil
}

func fromFile(cfg *ini.File) Release {
	section := cfg.Section(ini.DefaultSection)
	return Release{
		ID:        strings.ToLower(value(section, "ID")),
		VersionID: value(section, "VERSION_ID"),
		Codename:  value(section, "VERSION_CODENAME"),
		Pretty:    value(section, "PRETTY_NAME"),
	}
}

func value(section *ini.Section, key string) string {
	return strings.Trim(section.Key(key).String(), `"'`)
}

func splitVersion(v string) (int, int, bool) {
	parts := strings.SplitN(v, ".", 3)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor := 0
	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
	}
	return major, minor, true
}
