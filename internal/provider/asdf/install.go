package asdf

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/pyprep/internal/domain/compiler"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/provider/commandutil"
	"github.com/felixgeelhaar/pyprep/internal/validation"
)

// TagResolver picks the asdf release to clone.
type TagResolver interface {
	Resolve(ctx context.Context) (string, bool)
}

// InstallStep clones asdf at the resolved release tag.
type InstallStep struct {
	repo     string
	layout   Layout
	resolver TagResolver
	id       compiler.StepID
	runner   ports.CommandRunner
	fs       ports.FileSystem

	// the tag is looked up once so Plan and Apply agree.
	resolved bool
	tag      string
	fellBack bool
}

// NewInstallStep creates an InstallStep.
func NewInstallStep(repo string, layout Layout, resolver TagResolver, runner ports.CommandRunner, fs ports.FileSystem) *InstallStep {
	return &InstallStep{
		repo:     repo,
		layout:   layout,
		resolver: resolver,
		id:       compiler.MustNewStepID("asdf:install"),
		runner:   runner,
		fs:       fs,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() compiler.StepID {
	return s.id
}

// Policy returns PolicyAbort.
func (s *InstallStep) Policy() compiler.FailurePolicy {
	return compiler.PolicyAbort
}

// Check reports satisfied when the checkout's asdf.sh exists.
func (s *InstallStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	if s.fs.Exists(s.layout.Script()) {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

func (s *InstallStep) resolve(ctx context.Context) (string, bool) {
	if !s.resolved {
		s.tag, s.fellBack = s.resolver.Resolve(ctx)
		s.resolved = true
	}
	return s.tag, s.fellBack
}

// Plan resolves the tag that would be cloned.
func (s *InstallStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	tag, fellBack := s.resolve(ctx.Context())
	detail := tag
	if fellBack {
		detail += " (fallback)"
	}
	return compiler.NewDiff(compiler.DiffTypeAdd, "asdf", s.layout.Dir, detail), nil
}

// Apply clones the repository at the resolved tag.
func (s *InstallStep) Apply(ctx compiler.RunContext) error {
	tag, _ := s.resolve(ctx.Context())

	if err := validation.ValidateGitRef(tag); err != nil {
		return fmt.Errorf("invalid asdf tag: %w", err)
	}
	if err := validation.ValidateGitRemoteURL(s.repo); err != nil {
		return fmt.Errorf("invalid asdf repository: %w", err)
	}
	if s.fs.Exists(s.layout.Dir) {
		return fmt.Errorf("%s exists but has no asdf.sh; move it aside and rerun", s.layout.Dir)
	}

	_, err := commandutil.Run(ctx.Context(), s.runner, "git", "clone", s.repo, s.layout.Dir, "--branch", tag)
	return err
}

// ProfileEntries returns the asdf loading lines.
func (s *InstallStep) ProfileEntries() []compiler.ProfileEntry {
	return s.layout.ProfileEntries()
}

// Explain provides a human-readable explanation.
func (s *InstallStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"install asdf",
		fmt.Sprintf("Clones %s into %s at the newest supported release tag and loads it from the shell profile.", s.repo, s.layout.Display),
		[]string{"https://asdf-vm.com/guide/getting-started.html"},
	)
}
