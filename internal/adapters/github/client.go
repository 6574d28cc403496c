// Package github provides a GitHub adapter using the gh CLI.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// ErrNotAuthenticated is returned when gh has no logged-in host.
var ErrNotAuthenticated = errors.New("gh is not authenticated")

// Client implements ports.ReleaseSource using the gh CLI. Authenticated gh
// requests are not subject to the anonymous API rate limit.
type Client struct {
	runner ports.CommandRunner
}

// NewClient creates a new GitHub client.
func NewClient(runner ports.CommandRunner) *Client {
	return &Client{
		runner: runner,
	}
}

// IsAuthenticated checks if the user is authenticated with GitHub.
func (c *Client) IsAuthenticated(ctx context.Context) (bool, error) {
	result, err := c.runner.Run(ctx, "gh", "auth", "status")
	if err != nil {
		return false, fmt.Errorf("failed to check auth status: %w", err)
	}
	return result.Success(), nil
}

// ghReleaseResponse is the subset of the release document we read.
type ghReleaseResponse struct {
	TagName string `json:"tag_name"`
}

// LatestTag returns the tag of the newest release of repo ("owner/name").
func (c *Client) LatestTag(ctx context.Context, repo string) (string, error) {
	authed, err := c.IsAuthenticated(ctx)
	if err != nil {
		return "", err
	}
	if !authed {
		return "", ErrNotAuthenticated
	}

	result, err := c.runner.Run(ctx, "gh", "api", fmt.Sprintf("repos/%s/releases/latest", repo))
	if err != nil {
		return "", fmt.Errorf("failed to query latest release: %w", err)
	}
	if !result.Success() {
		return "", fmt.Errorf("failed to query latest release: %s", strings.TrimSpace(result.Stderr))
	}

	var resp ghReleaseResponse
	if err := json.Unmarshal([]byte(result.Stdout), &resp); err != nil {
		return "", fmt.Errorf("failed to parse release for %s: %w", repo, err)
	}
	return strings.TrimSpace(resp.TagName), nil
}

// Ensure Client implements ports.ReleaseSource.
var _ ports.ReleaseSource = (*Client)(nil)
