// Package commandutil holds helpers shared by the providers for invoking
// external tools.
package commandutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/ports"
)

const maxOutputLines = 5

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// Run invokes command and reports a launch failure or a non-zero exit as an
// error wrapping bootstrap.ErrCommandFailed. Only pass/fail matters to
// callers; the tail of the tool's output is kept for the message.
func Run(ctx context.Context, runner ports.CommandRunner, command string, args ...string) (ports.CommandResult, error) {
	call := ports.CommandCall{Command: command, Args: args}

	result, err := runner.Run(ctx, command, args...)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", bootstrap.ErrCommandFailed, call, err)
	}
	if !result.Success() {
		return result, fmt.Errorf("%w: %s exited with %d: %s",
			bootstrap.ErrCommandFailed, call, result.ExitCode, Tail(result.Output(), maxOutputLines))
	}
	return result, nil
}

// Tail returns the last n lines of output.
func Tail(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
