package config

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

type ruleOp string

const (
	opLess         ruleOp = "lt"
	opGreaterEqual ruleOp = "ge"
)

type rule struct {
	op      ruleOp
	version string // canonical semver, e.g. "v3.12"
}

func parseRule(when string) (rule, error) {
	op, ver, ok := strings.Cut(strings.TrimSpace(when), ":")
	if !ok {
		return rule{}, fmt.Errorf("rule %q must look like lt:3.12 or ge:3.12", when)
	}
	switch ruleOp(op) {
	case opLess, opGreaterEqual:
	default:
		return rule{}, fmt.Errorf("rule %q: unknown operator %q", when, op)
	}
	v := canonical(ver)
	if v == "" {
		return rule{}, fmt.Errorf("rule %q: %q is not a version", when, ver)
	}
	return rule{op: ruleOp(op), version: v}, nil
}

func (r rule) matches(version string) bool {
	cmp := semver.Compare(version, r.version)
	if r.op == opLess {
		return cmp < 0
	}
	return cmp >= 0
}

// canonical turns "3.12", "3.12.1" or "24.04" into a major.minor semver
// ("v3.12", "v24.4"). It returns "" for anything else.
func canonical(version string) string {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(version), "v"), ".")
	if len(parts) < 2 {
		return ""
	}
	nums := make([]string, 0, 2)
	for _, p := range parts[:2] {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return ""
		}
		nums = append(nums, strconv.Itoa(n))
	}
	v := "v" + strings.Join(nums, ".")
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// ExtraPackagesFor returns the packages the mapping adds for the given
// interpreter versions, in rule order and without duplicates. Versions that
// cannot be parsed contribute nothing.
func (c *Config) ExtraPackagesFor(versions ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range c.Apt.Extras {
		parsed, err := parseRule(r.When)
		if err != nil {
			continue
		}
		for _, v := range versions {
			cv := canonical(v)
			if cv == "" || !parsed.matches(cv) {
				continue
			}
			for _, pkg := range r.Packages {
				if !seen[pkg] {
					seen[pkg] = true
					out = append(out, pkg)
				}
			}
			break
		}
	}
	return out
}

// BuildPackagesFor returns the full package set for an interpreter version on
// an Ubuntu release. An empty ubuntuVersion removes nothing.
func (c *Config) BuildPackagesFor(pythonVersion, ubuntuVersion string) []string {
	removed := make(map[string]bool)
	if release := canonical(ubuntuVersion); release != "" {
		for _, rm := range c.Apt.Removed {
			if since := canonical(rm.Since); since != "" && semver.Compare(release, since) >= 0 {
				removed[rm.Package] = true
			}
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(pkgs []string) {
		for _, pkg := range pkgs {
			if removed[pkg] || seen[pkg] {
				continue
			}
			seen[pkg] = true
			out = append(out, pkg)
		}
	}
	add(c.Apt.BuildPackages)
	if pythonVersion != "" {
		add(c.ExtraPackagesFor(pythonVersion))
	}
	return out
}
