package github_test

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/pyprep/internal/adapters/github"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_IsAuthenticated(t *testing.T) {
	t.Parallel()

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()

		runner := mocks.NewCommandRunner()
		runner.AddResult("gh", []string{"auth", "status"}, ports.CommandResult{
			ExitCode: 0,
			Stdout:   "✓ Logged in to github.com as testuser",
		})

		client := github.NewClient(runner)
		authed, err := client.IsAuthenticated(context.Background())

		require.NoError(t, err)
		assert.True(t, authed)
	})

	t.Run("not authenticated", func(t *testing.T) {
		t.Parallel()

		runner := mocks.NewCommandRunner()
		runner.AddResult("gh", []string{"auth", "status"}, ports.CommandResult{
			ExitCode: 1,
			Stderr:   "You are not logged into any GitHub hosts",
		})

		client := github.NewClient(runner)
		authed, err := client.IsAuthenticated(context.Background())

		require.NoError(t, err)
		assert.False(t, authed)
	})

	t.Run("gh missing", func(t *testing.T) {
		t.Parallel()

		runner := mocks.NewCommandRunner()
		runner.AddError("gh", []string{"auth", "status"}, errors.New("executable file not found in $PATH"))

		_, err := github.NewClient(runner).IsAuthenticated(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_LatestTag(t *testing.T) {
	t.Parallel()

	latest := []string{"api", "repos/asdf-vm/asdf/releases/latest"}

	tests := []struct {
		name    string
		auth    ports.CommandResult
		result  ports.CommandResult
		want    string
		wantErr error
	}{
		{
			name:   "tag",
			result: ports.CommandResult{Stdout: `{"tag_name":"v0.15.0","draft":false}`},
			want:   "v0.15.0",
		},
		{
			name:    "not logged in",
			auth:    ports.CommandResult{ExitCode: 1},
			wantErr: github.ErrNotAuthenticated,
		},
		{
			name:   "api error",
			result: ports.CommandResult{ExitCode: 1, Stderr: "HTTP 404: Not Found"},
		},
		{
			name:   "bad json",
			result: ports.CommandResult{Stdout: "<html>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := mocks.NewCommandRunner()
			runner.AddResult("gh", []string{"auth", "status"}, tt.auth)
			runner.AddResult("gh", latest, tt.result)

			tag, err := github.NewClient(runner).LatestTag(context.Background(), "asdf-vm/asdf")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, runner.Called("gh", latest...))
			case tt.want != "":
				require.NoError(t, err)
				assert.Equal(t, tt.want, tag)
			default:
				assert.Error(t, err)
			}
		})
	}
}
