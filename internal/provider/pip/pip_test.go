package pip_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/config"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/pip"
	"github.com/felixgeelhaar/pyprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asdfPython = "/home/dev/.asdf/installs/python/3.13.1/bin/python"

func runContext() compiler.RunContext {
	env := bootstrap.NewEnvironment(mocks.NewEnvironment(map[string]string{"HOME": "/home/dev"}), false)
	return compiler.NewRunContext(context.Background(), env)
}

// sequence answers each Resolve with the next location; the last repeats.
type sequence struct {
	locs  []bootstrap.ToolBinaryLocation
	calls int
}

func (s *sequence) Resolve(context.Context) bootstrap.ToolBinaryLocation {
	i := s.calls
	if i >= len(s.locs) {
		i = len(s.locs) - 1
	}
	s.calls++
	return s.locs[i]
}

func system() bootstrap.ToolBinaryLocation {
	return bootstrap.ToolBinaryLocation{Path: "python3", Source: bootstrap.SourceSystem}
}

func asdf() bootstrap.ToolBinaryLocation {
	return bootstrap.ToolBinaryLocation{Path: asdfPython, Version: "3.13.1", Source: bootstrap.SourceAsdf}
}

func TestParsePackage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want pip.Package
	}{
		{"black", pip.Package{Name: "black"}},
		{"black==24.1.0", pip.Package{Name: "black", Version: "==24.1.0"}},
		{"ruff>=0.4", pip.Package{Name: "ruff", Version: ">=0.4"}},
		{"mypy<2", pip.Package{Name: "mypy", Version: "<2"}},
		{"tox~=4.0", pip.Package{Name: "tox", Version: "~=4.0"}},
		{"pkg<=2,!=1.5", pip.Package{Name: "pkg", Version: "<=2,!=1.5"}},
	}

	for _, tt := range tests {
		got := pip.ParsePackage(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.in, got.FullName())
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "flake-8", pip.NormalizeName("Flake_8"))
	assert.Equal(t, "zope-interface", pip.NormalizeName("zope.interface"))
	assert.Equal(t, "black", pip.Package{Name: "Black"}.NormalizedName())
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	steps, err := pip.NewProvider(mocks.NewCommandRunner(), &sequence{locs: []bootstrap.ToolBinaryLocation{system()}}).
		Compile(compiler.NewCompileContext(config.Default()).WithHome("/home/dev"))
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "pip:bootstrap", steps[0].ID().String())
	assert.Equal(t, compiler.PolicyAbort, steps[0].Policy())

	entries := steps[0].ProfileEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, `export PATH="$HOME/.local/bin:$PATH"`, entries[0].Line)
	assert.Equal(t, []string{"/home/dev/.local/bin"}, entries[0].PathDirs)
}

func TestBootstrapStep_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pipx   ports.CommandResult
		status compiler.StepStatus
	}{
		{"both present", ports.CommandResult{Stdout: "1.7.1"}, compiler.StatusSatisfied},
		{"pipx missing", ports.CommandResult{ExitCode: 1, Stderr: "No module named pipx"}, compiler.StatusNeedsApply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := mocks.NewCommandRunner()
			runner.AddResult(asdfPython, []string{"-m", "pip", "--version"}, ports.CommandResult{Stdout: "pip 24.3.1"})
			runner.AddResult(asdfPython, []string{"-m", "pipx", "--version"}, tt.pipx)
			step := pip.NewBootstrapStep(&sequence{locs: []bootstrap.ToolBinaryLocation{asdf()}}, pip.NewUserBin("/home/dev"), runner)

			status, err := step.Check(runContext())
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestBootstrapStep_ReResolvesInterpreter(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("python3", []string{"-m", "pip", "--version"}, ports.CommandResult{ExitCode: 1})
	runner.AddResult(asdfPython, []string{"-m", "pip", "install", "--user", "--upgrade", "pip", "pipx"}, ports.CommandResult{})
	interp := &sequence{locs: []bootstrap.ToolBinaryLocation{system(), asdf()}}
	step := pip.NewBootstrapStep(interp, pip.NewUserBin("/home/dev"), runner)

	status, err := step.Check(runContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusNeedsApply, status)

	require.NoError(t, step.Apply(runContext()))
	assert.Equal(t, 2, interp.calls)
	assert.True(t, runner.Called(asdfPython, "-m", "pip", "install", "--user", "--upgrade", "pip", "pipx"))
}

func TestBootstrapStep_ApplyFailures(t *testing.T) {
	t.Parallel()

	t.Run("externally managed", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddResult("python3", []string{"-m", "pip", "install", "--user", "--upgrade", "pip", "pipx"},
			ports.CommandResult{ExitCode: 1, Stderr: "error: externally-managed-environment"})
		step := pip.NewBootstrapStep(&sequence{locs: []bootstrap.ToolBinaryLocation{system()}}, pip.NewUserBin("/home/dev"), runner)

		err := step.Apply(runContext())
		require.Error(t, err)
		assert.True(t, errors.Is(err, bootstrap.ErrCommandFailed))
		assert.Contains(t, err.Error(), "install a Python with asdf first")
	})

	t.Run("interpreter missing", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddError("python3", []string{"-m", "pip", "install", "--user", "--upgrade", "pip", "pipx"},
			&exec.Error{Name: "python3", Err: exec.ErrNotFound})
		step := pip.NewBootstrapStep(&sequence{locs: []bootstrap.ToolBinaryLocation{system()}}, pip.NewUserBin("/home/dev"), runner)

		err := step.Apply(runContext())
		assert.True(t, errors.Is(err, bootstrap.ErrCommandFailed))
		assert.True(t, errors.Is(err, exec.ErrNotFound))
		assert.Contains(t, err.Error(), "python interpreter python3 is not installed")
	})

	t.Run("other launch error", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddError("python3", []string{"-m", "pip", "install", "--user", "--upgrade", "pip", "pipx"}, errors.New("permission denied"))
		step := pip.NewBootstrapStep(&sequence{locs: []bootstrap.ToolBinaryLocation{system()}}, pip.NewUserBin("/home/dev"), runner)

		err := step.Apply(runContext())
		assert.True(t, errors.Is(err, bootstrap.ErrCommandFailed))
		assert.NotContains(t, err.Error(), "not installed")
	})
}
