package ports

import "context"

// ReleaseSource looks up the newest published release tag of a repository.
type ReleaseSource interface {
	LatestTag(ctx context.Context, repo string) (string, error)
}
