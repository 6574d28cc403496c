// Package config holds the bootstrap configuration: built-in defaults plus an
// optional YAML or TOML overlay.
package config

import (
	"fmt"

	"github.com/felixgeelhaar/pyprep/internal/validation"
)

// Config is passed explicitly to every provider; nothing reads it globally.
type Config struct {
	ProfilePath string         `yaml:"profile_path" toml:"profile_path"`
	AssumeYes   bool           `yaml:"assume_yes" toml:"assume_yes"`
	Apt         AptConfig      `yaml:"apt" toml:"apt"`
	Asdf        AsdfConfig     `yaml:"asdf" toml:"asdf"`
	Python      PythonConfig   `yaml:"python" toml:"python"`
	Launcher    LauncherConfig `yaml:"launcher" toml:"launcher"`
	Pipx        PipxConfig     `yaml:"pipx" toml:"pipx"`
}

// AptConfig lists the interpreter build dependencies.
type AptConfig struct {
	BuildPackages []string         `yaml:"build_packages" toml:"build_packages"`
	Extras        []PackageRule    `yaml:"extras" toml:"extras"`
	Removed       []ReleaseRemoval `yaml:"removed" toml:"removed"`
}

// PackageRule adds packages for interpreters matching When ("lt:3.12", "ge:3.12").
type PackageRule struct {
	When     string   `yaml:"when" toml:"when"`
	Packages []string `yaml:"packages" toml:"packages"`
}

// ReleaseRemoval drops Package on Ubuntu releases at or after Since ("24.04").
type ReleaseRemoval struct {
	Package string `yaml:"package" toml:"package"`
	Since   string `yaml:"since" toml:"since"`
}

// AsdfConfig locates the asdf checkout and its release feed.
type AsdfConfig struct {
	Repo        string `yaml:"repo" toml:"repo"`
	Dir         string `yaml:"dir" toml:"dir"`
	ReleaseRepo string `yaml:"release_repo" toml:"release_repo"`
	APIBase     string `yaml:"api_base" toml:"api_base"`
	FallbackTag string `yaml:"fallback_tag" toml:"fallback_tag"`
	// BelowTag caps the release lookup; newer tags use the fallback. asdf
	// 0.16 dropped asdf.sh, which the profile sources.
	BelowTag string `yaml:"below_tag" toml:"below_tag"`
}

// PythonConfig controls interpreter provisioning.
type PythonConfig struct {
	Count               int      `yaml:"count" toml:"count"`
	SystemCommand       string   `yaml:"system_command" toml:"system_command"`
	DefaultPackages     []string `yaml:"default_packages" toml:"default_packages"`
	DefaultPackagesFile string   `yaml:"default_packages_file" toml:"default_packages_file"`
}

// LauncherConfig names the cargo crate providing the py launcher.
type LauncherConfig struct {
	Crate  string `yaml:"crate" toml:"crate"`
	Binary string `yaml:"binary" toml:"binary"`
}

// PipxConfig lists the tools installed with pipx.
type PipxConfig struct {
	Tools []string `yaml:"tools" toml:"tools"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ProfilePath: "~/.bashrc",
		Apt: AptConfig{
			BuildPackages: []string{
				"build-essential", "curl", "git", "libbz2-dev", "libffi-dev",
				"liblzma-dev", "libncursesw5-dev", "libreadline-dev", "libsqlite3-dev",
				"libssl-dev", "libxml2-dev", "libxmlsec1-dev", "tk-dev", "xz-utils",
				"zlib1g-dev",
			},
			Extras: []PackageRule{
				{When: "lt:3.12", Packages: []string{"python3-distutils"}},
			},
			Removed: []ReleaseRemoval{
				{Package: "python3-distutils", Since: "24.04"},
			},
		},
		Asdf: AsdfConfig{
			Repo:        "https://github.com/asdf-vm/asdf.git",
			Dir:         "~/.asdf",
			ReleaseRepo: "asdf-vm/asdf",
			APIBase:     "https://api.github.com",
			FallbackTag: "v0.15.0",
			BelowTag:    "v0.16.0",
		},
		Python: PythonConfig{
			Count:               3,
			SystemCommand:       "python3",
			DefaultPackages:     []string{"pip", "setuptools", "wheel"},
			DefaultPackagesFile: "~/.default-python-packages",
		},
		Launcher: LauncherConfig{
			Crate:  "python-launcher",
			Binary: "py",
		},
		Pipx: PipxConfig{
			Tools: []string{"black", "flake8", "ipython", "mypy", "poetry", "pytest", "ruff", "tox"},
		},
	}
}

// Validate checks every name that ends up on a command line.
func (c *Config) Validate() error {
	errs := NewErrorList()

	check := func(field string, err error) {
		if err != nil {
			errs.AddValidation(field, err)
		}
	}

	check("profile_path", validation.ValidatePath(c.ProfilePath))
	for i, pkg := range c.Apt.BuildPackages {
		check(fmt.Sprintf("apt.build_packages[%d]", i), validation.ValidatePackageName(pkg))
	}
	for i, rule := range c.Apt.Extras {
		field := fmt.Sprintf("apt.extras[%d]", i)
		if _, err := parseRule(rule.When); err != nil {
			check(field+".when", err)
		}
		for j, pkg := range rule.Packages {
			check(fmt.Sprintf("%s.packages[%d]", field, j), validation.ValidatePackageName(pkg))
		}
	}
	for i, rm := range c.Apt.Removed {
		field := fmt.Sprintf("apt.removed[%d]", i)
		check(field+".package", validation.ValidatePackageName(rm.Package))
		if canonical(rm.Since) == "" {
			check(field+".since", fmt.Errorf("%q is not a release version", rm.Since))
		}
	}

	check("asdf.repo", validation.ValidateGitRemoteURL(c.Asdf.Repo))
	check("asdf.dir", validation.ValidatePath(c.Asdf.Dir))
	check("asdf.release_repo", validation.ValidateRepoSlug(c.Asdf.ReleaseRepo))
	check("asdf.fallback_tag", validation.ValidateGitRef(c.Asdf.FallbackTag))
	if c.Asdf.BelowTag != "" {
		check("asdf.below_tag", validation.ValidateGitRef(c.Asdf.BelowTag))
	}
	if c.Asdf.APIBase == "" {
		check("asdf.api_base", validation.ErrEmptyInput)
	}

	if c.Python.Count < 1 {
		check("python.count", fmt.Errorf("must be at least 1, got %d", c.Python.Count))
	}
	check("python.system_command", validation.ValidateExecutable(c.Python.SystemCommand))
	check("python.default_packages_file", validation.ValidatePath(c.Python.DefaultPackagesFile))
	for i, pkg := range c.Python.DefaultPackages {
		check(fmt.Sprintf("python.default_packages[%d]", i), validation.ValidatePipPackage(pkg))
	}

	check("launcher.crate", validation.ValidateCargoCrate(c.Launcher.Crate))
	check("launcher.binary", validation.ValidateExecutable(c.Launcher.Binary))

	for i, tool := range c.Pipx.Tools {
		check(fmt.Sprintf("pipx.tools[%d]", i), validation.ValidatePipPackage(tool))
	}

	return errs.AsError()
}
