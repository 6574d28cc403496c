package config

import (
	"path/filepath"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// EnvConfigPath names the variable that points at an explicit config file.
const EnvConfigPath = "PYPREP_CONFIG"

var configNames = []string{"config.yaml", "config.yml", "config.toml"}

// CandidatePaths returns the config locations in priority order: the
// PYPREP_CONFIG file, then pyprep/config.{yaml,yml,toml} under
// $XDG_CONFIG_HOME (default ~/.config).
func CandidatePaths(env ports.Environment) []string {
	paths := make([]string, 0, len(configNames)+1)
	if explicit := env.Getenv(EnvConfigPath); explicit != "" {
		paths = append(paths, ports.ExpandHome(explicit, env.Getenv("HOME")))
	}

	base := env.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home := env.Getenv("HOME")
		if home == "" {
			return paths
		}
		base = filepath.Join(home, ".config")
	}
	for _, name := range configNames {
		paths = append(paths, filepath.Join(base, "pyprep", name))
	}
	return paths
}

// Discover returns the first candidate that exists as a file, or "" so the
// built-in defaults apply. A PYPREP_CONFIG value is returned even when it
// is missing, so Load reports it.
func Discover(env ports.Environment, fs ports.FileSystem) string {
	if explicit := env.Getenv(EnvConfigPath); explicit != "" {
		return ports.ExpandHome(explicit, env.Getenv("HOME"))
	}
	for _, path := range CandidatePaths(env) {
		if fs.Exists(path) && !fs.IsDir(path) {
			return path
		}
	}
	return ""
}
