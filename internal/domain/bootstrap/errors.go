// Package bootstrap holds the resolution algorithms shared by the bootstrap
// steps: release tag fallback, interpreter lookup and the process environment.
package bootstrap

import (
	"errors"

	"github.com/felixgeelhaar/pyprep/internal/domain/config"
)

// Sentinel errors classifying why a run aborted.
var (
	// ErrNetwork means a remote fetch failed and no fallback exists.
	ErrNetwork = errors.New("network fetch failed")
	// ErrCommandFailed means an external tool exited non-zero.
	ErrCommandFailed = errors.New("external command failed")
	// ErrNoPythonVersions means the version listing produced no candidates.
	ErrNoPythonVersions = errors.New("no installable python versions found")
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitCommandFailed = 2
	ExitNetwork       = 3
	ExitConfig        = 4
)

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNetwork):
		return ExitNetwork
	case errors.Is(err, ErrCommandFailed):
		return ExitCommandFailed
	case config.GetUserError(err) != nil:
		return ExitConfig
	default:
		return ExitFailure
	}
}
