package cargo_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/config"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/cargo"
	"github.com/felixgeelhaar/pyprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bin = cargo.Bin{Dir: "/home/dev/.cargo/bin", Display: "$HOME/.cargo/bin"}

func runContext() compiler.RunContext {
	env := bootstrap.NewEnvironment(mocks.NewEnvironment(map[string]string{"HOME": "/home/dev"}), false)
	return compiler.NewRunContext(context.Background(), env)
}

// onPath builds a PathLookup that finds only the given names.
func onPath(names ...string) ports.PathLookup {
	return func(file string) (string, error) {
		for _, n := range names {
			if n == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestParseCrate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want cargo.Crate
	}{
		{"python-launcher", cargo.Crate{Name: "python-launcher"}},
		{"python-launcher@1.0.1", cargo.Crate{Name: "python-launcher", Version: "1.0.1"}},
		{"@1.0", cargo.Crate{Name: "@1.0"}},
	}

	for _, tt := range tests {
		got := cargo.ParseCrate(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.FullName())
	}
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	steps, err := cargo.NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem(), onPath()).
		Compile(compiler.NewCompileContext(config.Default()).WithHome("/home/dev"))
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "cargo:launcher", steps[0].ID().String())
	assert.Equal(t, compiler.PolicyWarn, steps[0].Policy())

	entries := steps[0].ProfileEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, `export PATH="$HOME/.cargo/bin:$PATH"`, entries[0].Line)
	assert.Equal(t, []string{"/home/dev/.cargo/bin"}, entries[0].PathDirs)
}

func TestLauncherStep_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   ports.PathLookup
		files  []string
		status compiler.StepStatus
	}{
		{"on path", onPath("py"), nil, compiler.StatusSatisfied},
		{"in cargo bin", onPath(), []string{"/home/dev/.cargo/bin/py"}, compiler.StatusSatisfied},
		{"missing", onPath("cargo"), nil, compiler.StatusNeedsApply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := mocks.NewFileSystem()
			for _, f := range tt.files {
				fs.AddFile(f, "")
			}
			step := cargo.NewLauncherStep(cargo.Crate{Name: "python-launcher"}, "py", bin, mocks.NewCommandRunner(), fs, tt.path)

			status, err := step.Check(runContext())
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestLauncherStep_Apply(t *testing.T) {
	t.Parallel()

	t.Run("cargo on path", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddResult("cargo", []string{"install", "python-launcher"}, ports.CommandResult{})
		step := cargo.NewLauncherStep(cargo.Crate{Name: "python-launcher"}, "py", bin, runner, mocks.NewFileSystem(), onPath("cargo"))

		require.NoError(t, step.Apply(runContext()))
	})

	t.Run("pinned version from rustup bin", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddResult("/home/dev/.cargo/bin/cargo", []string{"install", "python-launcher", "--version", "1.0.1"}, ports.CommandResult{})
		fs := mocks.NewFileSystem()
		fs.AddFile("/home/dev/.cargo/bin/cargo", "")
		step := cargo.NewLauncherStep(cargo.ParseCrate("python-launcher@1.0.1"), "py", bin, runner, fs, onPath())

		require.NoError(t, step.Apply(runContext()))
	})

	t.Run("no cargo", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		step := cargo.NewLauncherStep(cargo.Crate{Name: "python-launcher"}, "py", bin, runner, mocks.NewFileSystem(), onPath())

		err := step.Apply(runContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rustup")
		assert.Empty(t, runner.Calls())
	})

	t.Run("cargo cannot be executed", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddError("/home/dev/.cargo/bin/cargo", []string{"install", "python-launcher"},
			&exec.Error{Name: "/home/dev/.cargo/bin/cargo", Err: exec.ErrNotFound})
		fs := mocks.NewFileSystem()
		fs.AddFile("/home/dev/.cargo/bin/cargo", "")
		step := cargo.NewLauncherStep(cargo.Crate{Name: "python-launcher"}, "py", bin, runner, fs, onPath())

		err := step.Apply(runContext())
		assert.True(t, errors.Is(err, bootstrap.ErrCommandFailed))
		assert.Contains(t, err.Error(), "cargo is not installed")
		assert.Contains(t, err.Error(), "rustup")
	})

	t.Run("install fails", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		runner.AddResult("cargo", []string{"install", "python-launcher"}, ports.CommandResult{ExitCode: 101, Stderr: "error: linker `cc` not found"})
		step := cargo.NewLauncherStep(cargo.Crate{Name: "python-launcher"}, "py", bin, runner, mocks.NewFileSystem(), onPath("cargo"))

		err := step.Apply(runContext())
		assert.True(t, errors.Is(err, bootstrap.ErrCommandFailed))
		assert.Contains(t, err.Error(), "linker")
	})

	t.Run("invalid crate", func(t *testing.T) {
		t.Parallel()
		runner := mocks.NewCommandRunner()
		step := cargo.NewLauncherStep(cargo.Crate{Name: "x; rm -rf ~"}, "py", bin, runner, mocks.NewFileSystem(), onPath("cargo"))

		assert.Error(t, step.Apply(runContext()))
		assert.Empty(t, runner.Calls())
	})
}
