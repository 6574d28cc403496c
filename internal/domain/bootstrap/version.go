package bootstrap

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/ports"
	"golang.org/x/mod/semver"
)

// VersionResolver picks the release tag to install. It never fails: an
// unreachable source, an empty answer or a malformed tag all yield the fallback.
type VersionResolver struct {
	source   ports.ReleaseSource
	repo     string
	fallback string
	ceiling  string
	logger   ports.Logger
}

// NewVersionResolver creates a VersionResolver for repo ("owner/name").
func NewVersionResolver(source ports.ReleaseSource, repo, fallback string, logger ports.Logger) *VersionResolver {
	return &VersionResolver{
		source:   source,
		repo:     repo,
		fallback: fallback,
		logger:   logger,
	}
}

// WithCeiling makes tags at or above ceiling fall back. An empty ceiling
// disables the check.
func (r *VersionResolver) WithCeiling(ceiling string) *VersionResolver {
	r.ceiling = canonicalTag(ceiling)
	return r
}

// Resolve returns the tag and whether the fallback was used.
func (r *VersionResolver) Resolve(ctx context.Context) (string, bool) {
	tag, err := r.source.LatestTag(ctx, r.repo)
	if err != nil {
		r.logger.Warn(ctx, "latest release lookup failed, using fallback",
			ports.F("repo", r.repo), ports.F("fallback", r.fallback), ports.F("error", err))
		return r.fallback, true
	}

	tag = strings.TrimSpace(tag)
	if !IsReleaseTag(tag) {
		r.logger.Warn(ctx, "latest release tag unusable, using fallback",
			ports.F("repo", r.repo), ports.F("tag", tag), ports.F("fallback", r.fallback))
		return r.fallback, true
	}

	if r.ceiling != "" && semver.Compare(canonicalTag(tag), r.ceiling) >= 0 {
		r.logger.Warn(ctx, "latest release is newer than supported, using fallback",
			ports.F("repo", r.repo), ports.F("tag", tag), ports.F("below", r.ceiling), ports.F("fallback", r.fallback))
		return r.fallback, true
	}

	r.logger.Debug(ctx, "resolved latest release", ports.F("repo", r.repo), ports.F("tag", tag))
	return tag, false
}

// IsReleaseTag reports whether tag is a semantic version, with or without
// the leading "v".
func IsReleaseTag(tag string) bool {
	if tag == "" {
		return false
	}
	if semver.IsValid(tag) {
		return true
	}
	return !strings.HasPrefix(tag, "v") && semver.IsValid("v"+tag)
}

func canonicalTag(tag string) string {
	if tag == "" || strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}
