// Package pip bootstraps pip and pipx for the active interpreter.
package pip

import (
	"strings"
)

// Package is a pip requirement split into name and version specifier.
type Package struct {
	Name    string
	Version string // Optional: version specifier (e.g., "==23.1.0", ">=3.0")
}

// specifiers in match order; two-character operators before their prefixes.
var specifiers = []string{"==", ">=", "<=", "!=", "~=", "<", ">"}

// ParsePackage parses "pkg", "pkg==1.0" or "pkg>=1.0".
func ParsePackage(s string) Package {
	best := -1
	for _, spec := range specifiers {
		if idx := strings.Index(s, spec); idx > 0 && (best == -1 || idx < best) {
			best = idx
		}
	}
	if best > 0 {
		return Package{Name: s[:best], Version: s[best:]}
	}
	return Package{Name: s}
}

// FullName returns the package name with its version specifier.
func (p Package) FullName() string {
	return p.Name + p.Version
}

// NormalizedName folds case and separators the way package indexes do, so
// "Flake8" and "flake_8" compare equal to "flake8" and "flake-8".
func (p Package) NormalizedName() string {
	return NormalizeName(p.Name)
}

// NormalizeName lowercases name and maps "_" and "." to "-".
func NormalizeName(name string) string {
	return strings.NewReplacer("_", "-", ".", "-").Replace(strings.ToLower(name))
}
