// Package release implements ports.ReleaseSource against the GitHub releases API.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/pyprep/internal/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultAPIBase is the public GitHub REST endpoint.
	DefaultAPIBase    = "https://api.github.com"
	httpClientTimeout = 15 * time.Second
	maxResponseBytes  = 1 << 20
)

var (
	// ErrRequestFailed is returned when the release endpoint cannot be reached
	// or answers with a non-200 status.
	ErrRequestFailed = zerr.New("latest release request failed")
	// ErrParseFailed is returned when the response body is not a release document.
	ErrParseFailed = zerr.New("latest release response could not be parsed")
)

// GitHubSource queries /repos/{owner}/{repo}/releases/latest.
type GitHubSource struct {
	apiBase    string
	httpClient *http.Client
}

// NewGitHubSource creates a GitHubSource for apiBase with the default
// timeout. An empty apiBase selects DefaultAPIBase.
func NewGitHubSource(apiBase string) *GitHubSource {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return NewGitHubSourceWithClient(apiBase, &http.Client{Timeout: httpClientTimeout})
}

// NewGitHubSourceWithClient creates a GitHubSource with a custom base URL and client.
func NewGitHubSourceWithClient(apiBase string, client *http.Client) *GitHubSource {
	return &GitHubSource{
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: client,
	}
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// LatestTag returns the tag name of the newest release of repo ("owner/name").
// An empty tag is returned as-is; callers decide whether to fall back.
func (s *GitHubSource) LatestTag(ctx context.Context, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", s.apiBase, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", zerr.Wrap(err, ErrRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrRequestFailed.Error()), "repo", repo)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(ErrRequestFailed, "status_code", resp.StatusCode)
		return "", zerr.With(statusErr, "repo", repo)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", zerr.Wrap(err, ErrRequestFailed.Error())
	}

	var release releaseResponse
	if err := json.Unmarshal(body, &release); err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrParseFailed.Error()), "repo", repo)
	}

	return strings.TrimSpace(release.TagName), nil
}

// Ensure GitHubSource implements ports.ReleaseSource.
var _ ports.ReleaseSource = (*GitHubSource)(nil)
