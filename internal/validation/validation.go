// Package validation checks user-supplied names before they reach a command line.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidPipPackage  = errors.New("invalid pip package name")
	ErrInvalidCargoCrate  = errors.New("invalid cargo crate name")
	ErrInvalidExecutable  = errors.New("invalid executable name")
	ErrInvalidRepoSlug    = errors.New("invalid repository slug")
	ErrPathTraversal      = errors.New("path traversal detected")
	ErrInvalidPath        = errors.New("invalid path")
	ErrCommandInjection   = errors.New("potential command injection detected")
)

var (
	// apt package names, e.g. "build-essential", "libssl-dev", "g++".
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// pip requirement with optional specifier, e.g. "ruff", "black==24.1.0".
	pipPackageRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*([=<>!~]=?[a-zA-Z0-9._*-]+)?$`)

	// crate with optional @version, e.g. "python-launcher@1.0.0".
	crateRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*(@[a-zA-Z0-9._-]+)?$`)

	// bare executable or absolute path, e.g. "py", "python3", "/usr/bin/python3".
	executableRegex = regexp.MustCompile(`^(/[a-zA-Z0-9._-]+)*/?[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// GitHub "owner/name".
	repoSlugRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r", "\\"}

	// pip comparison operators use < and >; arguments never pass through a shell.
	pipMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "\n", "\r", "\\"}
)

func validateName(value string, pattern *regexp.Regexp, kind error) error {
	return validateWith(value, pattern, kind, shellMetaChars)
}

func validateWith(value string, pattern *regexp.Regexp, kind error, meta []string) error {
	if value == "" {
		return ErrEmptyInput
	}
	if len(value) > 256 {
		return fmt.Errorf("%w: too long (max 256 characters)", kind)
	}
	if containsAny(value, meta) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, value)
	}
	if !pattern.MatchString(value) {
		return fmt.Errorf("%w: %q contains invalid characters", kind, value)
	}
	return nil
}

// ValidatePackageName validates an apt package name.
func ValidatePackageName(name string) error {
	return validateName(name, packageNameRegex, ErrInvalidPackageName)
}

// ValidatePipPackage validates a pip or pipx package name with optional version specifier.
func ValidatePipPackage(pkg string) error {
	return validateWith(pkg, pipPackageRegex, ErrInvalidPipPackage, pipMetaChars)
}

// ValidateCargoCrate validates a Cargo crate name with optional version.
func ValidateCargoCrate(crate string) error {
	return validateName(crate, crateRegex, ErrInvalidCargoCrate)
}

// ValidateExecutable validates a command name or absolute executable path.
func ValidateExecutable(name string) error {
	return validateName(name, executableRegex, ErrInvalidExecutable)
}

// ValidateRepoSlug validates an "owner/name" repository reference.
func ValidateRepoSlug(slug string) error {
	return validateName(slug, repoSlugRegex, ErrInvalidRepoSlug)
}

// ValidatePath rejects empty paths, null bytes and traversal sequences.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: path contains null byte", ErrInvalidPath)
	}
	if containsPathTraversal(path) {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrPathTraversal, path)
	}
	return nil
}

func containsAny(s string, chars []string) bool {
	for _, char := range chars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}

func containsPathTraversal(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." {
			return true
		}
	}
	lower := strings.ToLower(path)
	return strings.Contains(lower, "%2e%2e")
}
