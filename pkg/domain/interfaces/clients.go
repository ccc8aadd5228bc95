package interfaces

import (
	"context"

	"github.com/hngkr/releases-mcp/pkg/domain/model"
)

// GitHubClient defines the release query against the GitHub API
type GitHubClient interface {
	// LatestRelease returns the most recent stable release of a repository.
	// A repository without qualifying releases yields an error tagged
	// types.TagNotFound.
	LatestRelease(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error)
}

// PyPIClient defines the version query against the PyPI JSON API
type PyPIClient interface {
	// LatestVersion returns the highest stable version of a package.
	// A missing package or an empty stable set yields an error tagged
	// types.TagNotFound.
	LatestVersion(ctx context.Context, pkg string) (*model.PyPIVersionInfo, error)
}
