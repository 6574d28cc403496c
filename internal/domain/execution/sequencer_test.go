package execution_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/domain/execution"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/shell"
	"github.com/felixgeelhaar/pyprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilePath = "/home/dev/.bashrc"

type fixture struct {
	fs     *mocks.FileSystem
	osEnv  *mocks.Environment
	env    *bootstrap.Environment
	logger *mocks.Logger
	seq    *execution.Sequencer
}

func newFixture() *fixture {
	fs := mocks.NewFileSystem()
	osEnv := mocks.NewEnvironment(map[string]string{"HOME": "/home/dev", "PATH": "/usr/bin"})
	env := bootstrap.NewEnvironment(osEnv, false)
	logger := mocks.NewLogger()
	return &fixture{
		fs:     fs,
		osEnv:  osEnv,
		env:    env,
		logger: logger,
		seq:    execution.NewSequencer(env, shell.NewProfile(fs, profilePath), logger),
	}
}

func TestSequencer_AllSucceed(t *testing.T) {
	t.Parallel()

	f := newFixture()
	first := mocks.NewStep("apt:update", compiler.PolicyWarn)
	second := mocks.NewStep("asdf:install", compiler.PolicyAbort)

	result := f.seq.Run(context.Background(), []compiler.Step{first, second})

	require.NoError(t, result.Err())
	assert.False(t, result.Aborted())
	assert.Equal(t, 0, bootstrap.ExitCode(result.Err()))
	assert.Equal(t, execution.RunSummary{Total: 2, Applied: 2}, result.Summary())
	assert.Equal(t, 1, first.Applies())
	assert.Equal(t, 1, second.Applies())
	assert.Len(t, f.logger.Messages(ports.LevelInfo), 4, "start and done per step")
}

func TestSequencer_AbortHaltsBeforeLaterSteps(t *testing.T) {
	t.Parallel()

	f := newFixture()
	failing := mocks.NewStep("apt:build-deps", compiler.PolicyAbort).
		FailApply(bootstrap.ErrCommandFailed)
	later := mocks.NewStep("asdf:install", compiler.PolicyAbort)

	result := f.seq.Run(context.Background(), []compiler.Step{
		mocks.NewStep("apt:update", compiler.PolicyWarn),
		failing,
		later,
	})

	assert.True(t, result.Aborted())
	require.Error(t, result.Err())
	assert.ErrorIs(t, result.Err(), bootstrap.ErrCommandFailed)
	assert.NotZero(t, bootstrap.ExitCode(result.Err()))
	assert.Equal(t, 0, later.Checks())
	assert.Equal(t, 0, later.Applies())

	results := result.Results()
	require.Len(t, results, 3)
	assert.Equal(t, compiler.StatusSkipped, results[2].Status())
	assert.Equal(t, execution.RunSummary{Total: 3, Applied: 1, Failed: 1, Skipped: 1}, result.Summary())
	assert.Len(t, f.logger.Messages(ports.LevelError), 1)
}

func TestSequencer_WarnFailureContinues(t *testing.T) {
	t.Parallel()

	f := newFixture()
	optional := mocks.NewStep("pipx:tool:ruff", compiler.PolicyWarn).FailApply(errors.New("pipx exited 1"))
	after := mocks.NewStep("pipx:tool:mypy", compiler.PolicyWarn)

	result := f.seq.Run(context.Background(), []compiler.Step{optional, after})

	assert.False(t, result.Aborted())
	assert.NoError(t, result.Err())
	assert.Equal(t, 0, bootstrap.ExitCode(result.Err()))
	assert.Equal(t, 1, after.Applies())
	assert.True(t, result.Results()[0].Warned())
	assert.Equal(t, []string{"step failed, continuing"}, f.logger.Messages(ports.LevelWarn))
}

func TestSequencer_FailedStepProfileEntriesPerPolicy(t *testing.T) {
	t.Parallel()

	f := newFixture()
	launcher := mocks.NewStep("cargo:launcher", compiler.PolicyWarn).
		FailApply(errors.New("cargo is not installed")).
		WithEntries(compiler.PathEntry("$HOME/.cargo/bin", "/home/dev/.cargo/bin"))
	pipBootstrap := mocks.NewStep("pip:bootstrap", compiler.PolicyAbort).
		FailApply(bootstrap.ErrCommandFailed).
		WithEntries(compiler.PathEntry("$HOME/.local/bin", "/home/dev/.local/bin"))

	result := f.seq.Run(context.Background(), []compiler.Step{launcher, pipBootstrap})

	assert.True(t, result.Aborted())
	assert.Equal(t, "export PATH=\"$HOME/.cargo/bin:$PATH\"\n", f.fs.Content(profilePath))
	assert.Equal(t, []string{`export PATH="$HOME/.cargo/bin:$PATH"`}, result.Results()[0].ProfileLines())
	assert.Empty(t, result.Results()[1].ProfileLines())

	again := newFixture()
	again.fs.AddFile(profilePath, f.fs.Content(profilePath))
	again.seq.Run(context.Background(), []compiler.Step{launcher})
	assert.Equal(t, f.fs.Content(profilePath), again.fs.Content(profilePath))
}

func TestSequencer_CheckErrorPerPolicy(t *testing.T) {
	t.Parallel()

	f := newFixture()
	warnStep := mocks.NewStep("cargo:launcher", compiler.PolicyWarn).FailCheck(errors.New("cargo missing"))
	abortStep := mocks.NewStep("pip:bootstrap", compiler.PolicyAbort).FailCheck(errors.New("broken"))

	result := f.seq.Run(context.Background(), []compiler.Step{warnStep, abortStep})

	assert.Equal(t, 1, warnStep.Applies(), "warn step is applied despite check error")
	assert.Equal(t, 0, abortStep.Applies())
	assert.True(t, result.Aborted())
	assert.Contains(t, result.Err().Error(), "pip:bootstrap: check: broken")
}

func TestSequencer_SatisfiedStepRepairsProfile(t *testing.T) {
	t.Parallel()

	f := newFixture()
	step := mocks.NewStep("asdf:install", compiler.PolicyAbort).Satisfied().WithEntries(
		compiler.SourceEntry("$HOME/.asdf/asdf.sh"),
		compiler.PathEntry("$HOME/.asdf/bin", "/home/dev/.asdf/bin"),
	)

	result := f.seq.Run(context.Background(), []compiler.Step{step})

	require.NoError(t, result.Err())
	assert.Equal(t, 0, step.Applies())
	assert.Equal(t, compiler.StatusSatisfied, result.Results()[0].Status())
	assert.Equal(t, ". \"$HOME/.asdf/asdf.sh\"\nexport PATH=\"$HOME/.asdf/bin:$PATH\"\n", f.fs.Content(profilePath))
	assert.Equal(t, "/home/dev/.asdf/bin:/usr/bin", f.osEnv.Getenv("PATH"))
	assert.Len(t, result.ProfileLines(), 2)
}

func TestSequencer_PathVisibleToLaterSteps(t *testing.T) {
	t.Parallel()

	f := newFixture()
	var seenPath string
	installer := mocks.NewStep("cargo:launcher", compiler.PolicyWarn).
		WithEntries(compiler.PathEntry("$HOME/.cargo/bin", "/home/dev/.cargo/bin"))
	consumer := mocks.NewStep("pip:bootstrap", compiler.PolicyAbort).OnApply(func(rc compiler.RunContext) {
		seenPath = rc.Env().Path()
	})

	f.seq.Run(context.Background(), []compiler.Step{installer, consumer})

	assert.Equal(t, "/home/dev/.cargo/bin:/usr/bin", seenPath)
}

func TestSequencer_ProfileWriteFailureFollowsPolicy(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.fs.AddDir("/home/dev")
	f.fs.FailWrites(profilePath, errors.New("permission denied"))

	step := mocks.NewStep("pip:bootstrap", compiler.PolicyAbort).
		WithEntries(compiler.PathEntry("$HOME/.local/bin", "/home/dev/.local/bin"))

	result := f.seq.Run(context.Background(), []compiler.Step{step})

	assert.True(t, result.Aborted())
	assert.Contains(t, result.Err().Error(), "update shell profile")
}

func TestSequencer_TwoRunsWriteEachLineOnce(t *testing.T) {
	t.Parallel()

	f := newFixture()
	steps := func() []compiler.Step {
		return []compiler.Step{
			mocks.NewStep("asdf:install", compiler.PolicyAbort).WithEntries(
				compiler.SourceEntry("$HOME/.asdf/asdf.sh"),
				compiler.SourceEntry("$HOME/.asdf/completions/asdf.bash"),
				compiler.PathEntry("$HOME/.asdf/bin", "/home/dev/.asdf/bin"),
			),
			mocks.NewStep("cargo:launcher", compiler.PolicyWarn).WithEntries(
				compiler.PathEntry("$HOME/.cargo/bin", "/home/dev/.cargo/bin"),
			),
			mocks.NewStep("pip:bootstrap", compiler.PolicyAbort).WithEntries(
				compiler.PathEntry("$HOME/.local/bin", "/home/dev/.local/bin"),
			),
		}
	}

	first := f.seq.Run(context.Background(), steps())
	require.NoError(t, first.Err())
	afterFirst := f.fs.Content(profilePath)
	assert.Equal(t, 5, strings.Count(afterFirst, "\n"))

	second := f.seq.Run(context.Background(), steps())
	require.NoError(t, second.Err())
	assert.Equal(t, afterFirst, f.fs.Content(profilePath))
	assert.Empty(t, second.ProfileLines())
}

func TestSequencer_CancelledContextAborts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	first := mocks.NewStep("apt:update", compiler.PolicyWarn).OnApply(func(compiler.RunContext) { cancel() })
	second := mocks.NewStep("apt:upgrade", compiler.PolicyWarn)

	result := f.seq.Run(ctx, []compiler.Step{first, second})

	assert.True(t, result.Aborted())
	assert.ErrorIs(t, result.Err(), context.Canceled)
	assert.Equal(t, 0, second.Checks())
	assert.Equal(t, compiler.StatusSkipped, result.Results()[1].Status())
}
