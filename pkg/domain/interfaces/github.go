package interfaces

//go:generate moq -out mocks/github_mock.go -pkg mocks . GitHubClient

import (
	"context"

	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

// GitHubClient defines the forge API operations needed to inspect a repository
type GitHubClient interface {
	// DefaultBranch returns the repository's default branch name
	DefaultBranch(ctx context.Context, ref model.RepoRef) (string, error)

	// TreePaths lists every file path of branch recursively
	TreePaths(ctx context.Context, ref model.RepoRef, branch string) (*model.TreeListing, error)

	// RateLimitRemaining returns the remaining core quota; false when unknown
	RateLimitRemaining(ctx context.Context) (int, bool)
}
