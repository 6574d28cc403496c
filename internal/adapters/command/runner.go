// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// RealRunner executes actual external commands.
type RealRunner struct {
	stream io.Writer
	logger ports.Logger
}

// RunnerOption configures a RealRunner.
type RunnerOption func(*RealRunner)

// WithStream mirrors command stdout and stderr to w while still capturing them.
// Long-running tools (apt-get upgrade, asdf install) report progress this way.
func WithStream(w io.Writer) RunnerOption {
	return func(r *RealRunner) {
		r.stream = w
	}
}

// WithLogger logs every invocation at debug level.
func WithLogger(logger ports.Logger) RunnerOption {
	return func(r *RealRunner) {
		r.logger = logger
	}
}

// NewRealRunner creates a new RealRunner.
func NewRealRunner(opts ...RunnerOption) *RealRunner {
	r := &RealRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a command and returns the result.
// A non-zero exit is reported through CommandResult.ExitCode, not as an error;
// errors are reserved for commands that could not be started.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	if r.logger != nil {
		r.logger.Debug(ctx, "exec", ports.F("cmd", ports.CommandCall{Command: command, Args: args}.String()))
	}

	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr strings.Builder
	if r.stream != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.stream)
		cmd.Stderr = io.MultiWriter(&stderr, r.stream)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
