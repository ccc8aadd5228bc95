package interfaces

import "context"

// ResolverUseCase exposes the release resolution operations backing the
// MCP tools. All failure paths are converted to descriptive result
// strings; no error escapes to the protocol layer.
type ResolverUseCase interface {
	// GetLatestRelease resolves a configured alias or owner/repo name and
	// returns a formatted description of its latest stable release,
	// falling back to PyPI when configured.
	GetLatestRelease(ctx context.Context, name string) string

	// GetPyPIVersion returns a formatted description of the latest stable
	// version of a PyPI package, bypassing the mapping and GitHub.
	GetPyPIVersion(ctx context.Context, pkg string) string
}
