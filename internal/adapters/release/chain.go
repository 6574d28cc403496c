package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/pyprep/internal/ports"
)

// Chain asks each source in turn and returns the first non-empty tag.
type Chain struct {
	sources []ports.ReleaseSource
}

// NewChain creates a Chain over sources, in priority order.
func NewChain(sources ...ports.ReleaseSource) *Chain {
	return &Chain{sources: sources}
}

// LatestTag implements ports.ReleaseSource. When every source fails the
// errors are joined; when they all answer empty the empty tag is returned.
func (c *Chain) LatestTag(ctx context.Context, repo string) (string, error) {
	var errs []error
	for i, source := range c.sources {
		tag, err := source.LatestTag(ctx, repo)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %d: %w", i+1, err))
			continue
		}
		if tag != "" {
			return tag, nil
		}
	}
	if len(errs) == len(c.sources) && len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return "", nil
}

// Ensure Chain implements ports.ReleaseSource.
var _ ports.ReleaseSource = (*Chain)(nil)
