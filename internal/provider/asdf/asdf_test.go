package asdf_test

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/config"
	"github.com/felixgeelhaar/pyprep/internal/domain/execution"
	"github.com/felixgeelhaar/pyprep/internal/domain/pythons"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/asdf"
	"github.com/felixgeelhaar/pyprep/internal/provider/shell"
	"github.com/felixgeelhaar/pyprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const home = "/home/dev"

func runContext(interactive bool) compiler.RunContext {
	env := bootstrap.NewEnvironment(mocks.NewEnvironment(map[string]string{"HOME": home}), interactive)
	return compiler.NewRunContext(context.Background(), env)
}

type fixedTag struct {
	tag      string
	fellBack bool
}

func (f fixedTag) Resolve(context.Context) (string, bool) {
	return f.tag, f.fellBack
}

type stubProvisioner struct {
	err         error
	interactive []bool
}

func (s *stubProvisioner) Provision(_ context.Context, interactive bool) (*pythons.Result, error) {
	s.interactive = append(s.interactive, interactive)
	return &pythons.Result{}, s.err
}

func (s *stubProvisioner) Count() int { return 3 }

type stubSource struct{ tag string }

func (s stubSource) LatestTag(context.Context, string) (string, error) { return s.tag, nil }

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	p := asdf.NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem(), stubSource{tag: "v0.15.0"}, mocks.NewLogger(), &stubProvisioner{})
	steps, err := p.Compile(compiler.NewCompileContext(config.Default()).WithHome(home))
	require.NoError(t, err)

	require.Len(t, steps, 2)
	assert.Equal(t, "asdf:install", steps[0].ID().String())
	assert.Equal(t, "python:versions", steps[1].ID().String())
	assert.Equal(t, compiler.PolicyAbort, steps[0].Policy())
	assert.Equal(t, compiler.PolicyAbort, steps[1].Policy())
}

func TestLayout(t *testing.T) {
	t.Parallel()

	layout := asdf.NewLayout("~/.asdf", home)
	assert.Equal(t, "/home/dev/.asdf", layout.Dir)
	assert.Equal(t, "$HOME/.asdf", layout.Display)
	assert.Equal(t, "/home/dev/.asdf/asdf.sh", layout.Script())

	entries := layout.ProfileEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, `. "$HOME/.asdf/asdf.sh"`, entries[0].Line)
	assert.Equal(t, []string{"/home/dev/.asdf/shims"}, entries[0].PathDirs)
	assert.Equal(t, `. "$HOME/.asdf/completions/asdf.bash"`, entries[1].Line)
	assert.Equal(t, `export PATH="$HOME/.asdf/bin:$PATH"`, entries[2].Line)
	assert.Equal(t, []string{"/home/dev/.asdf/bin"}, entries[2].PathDirs)
}

func TestInstallStep_Check(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := asdf.NewInstallStep("https://github.com/asdf-vm/asdf.git", asdf.NewLayout("~/.asdf", home),
		fixedTag{tag: "v0.15.0"}, mocks.NewCommandRunner(), fs)

	status, err := step.Check(runContext(false))
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusNeedsApply, status)

	fs.AddFile("/home/dev/.asdf/asdf.sh", "# asdf")
	status, err = step.Check(runContext(false))
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusSatisfied, status)
}

func TestInstallStep_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tag       string
		existing  bool
		result    ports.CommandResult
		wantErr   error
		wantClone bool
	}{
		{name: "clones resolved tag", tag: "v0.15.2", wantClone: true},
		{name: "clone fails", tag: "v0.15.2", result: ports.CommandResult{ExitCode: 128, Stderr: "fatal: Remote branch v0.15.2 not found"}, wantErr: bootstrap.ErrCommandFailed, wantClone: true},
		{name: "rejects option-like tag", tag: "--upload-pack=evil"},
		{name: "directory in the way", tag: "v0.15.2", existing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := mocks.NewCommandRunner()
			args := []string{"clone", "https://github.com/asdf-vm/asdf.git", "/home/dev/.asdf", "--branch", tt.tag}
			runner.AddResult("git", args, tt.result)
			fs := mocks.NewFileSystem()
			if tt.existing {
				fs.AddDir("/home/dev/.asdf")
			}

			step := asdf.NewInstallStep("https://github.com/asdf-vm/asdf.git", asdf.NewLayout("~/.asdf", home),
				fixedTag{tag: tt.tag}, runner, fs)
			err := step.Apply(runContext(false))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantClone:
				assert.NoError(t, err)
			default:
				assert.Error(t, err)
			}
			assert.Equal(t, tt.wantClone, runner.Called("git", args...))
		})
	}
}

func TestInstallStep_Plan(t *testing.T) {
	t.Parallel()

	step := asdf.NewInstallStep("https://github.com/asdf-vm/asdf.git", asdf.NewLayout("~/.asdf", home),
		fixedTag{tag: "v0.15.0", fellBack: true}, mocks.NewCommandRunner(), mocks.NewFileSystem())

	diff, err := step.Plan(runContext(false))
	require.NoError(t, err)
	assert.Equal(t, "+ asdf /home/dev/.asdf (v0.15.0 (fallback))", diff.Summary())
}

func TestInstallStep_ResolvesThroughVersionResolver(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	runner := mocks.NewCommandRunner()
	runner.SetFallback(ports.CommandResult{})
	p := asdf.NewProvider(runner, mocks.NewFileSystem(), stubSource{tag: "v0.16.0"}, mocks.NewLogger(), &stubProvisioner{})
	steps, err := p.Compile(compiler.NewCompileContext(cfg).WithHome(home))
	require.NoError(t, err)

	require.NoError(t, steps[0].Apply(runContext(false)))
	assert.True(t, runner.Called("git", "clone", cfg.Asdf.Repo, "/home/dev/.asdf", "--branch", "v0.15.0"))
}

type countingSource struct {
	tag   string
	calls int
}

func (c *countingSource) LatestTag(context.Context, string) (string, error) {
	c.calls++
	return c.tag, nil
}

func TestInstallStep_ResolvesTagOncePerRun(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	source := &countingSource{}
	logger := mocks.NewLogger()
	runner := mocks.NewCommandRunner()
	runner.SetFallback(ports.CommandResult{})
	fs := mocks.NewFileSystem()

	steps, err := asdf.NewProvider(runner, fs, source, logger, &stubProvisioner{}).
		Compile(compiler.NewCompileContext(cfg).WithHome(home))
	require.NoError(t, err)

	env := bootstrap.NewEnvironment(mocks.NewEnvironment(map[string]string{"HOME": home, "PATH": "/usr/bin"}), false)
	seq := execution.NewSequencer(env, shell.NewProfile(fs, home+"/.bashrc"), logger)
	result := seq.Run(context.Background(), steps[:1])

	require.NoError(t, result.Err())
	assert.Equal(t, 1, source.calls)
	assert.Len(t, logger.Messages(ports.LevelWarn), 1)
	assert.Equal(t, "+ asdf /home/dev/.asdf (v0.15.0 (fallback))", result.Results()[0].Diff().Summary())
	assert.True(t, runner.Called("git", "clone", cfg.Asdf.Repo, "/home/dev/.asdf", "--branch", "v0.15.0"))
}

func TestPythonVersionsStep(t *testing.T) {
	t.Parallel()

	provisioner := &stubProvisioner{}
	step := asdf.NewPythonVersionsStep(provisioner)

	status, err := step.Check(runContext(true))
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusNeedsApply, status)
	assert.Empty(t, step.ProfileEntries())

	require.NoError(t, step.Apply(runContext(true)))
	require.NoError(t, step.Apply(runContext(false)))
	assert.Equal(t, []bool{true, false}, provisioner.interactive)

	provisioner.err = bootstrap.ErrNoPythonVersions
	assert.True(t, errors.Is(step.Apply(runContext(false)), bootstrap.ErrNoPythonVersions))
}
