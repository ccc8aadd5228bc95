package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hngkr/releases-mcp/pkg/domain/interfaces"
	"github.com/hngkr/releases-mcp/pkg/domain/model"
	"github.com/hngkr/releases-mcp/pkg/domain/types"
)

type resolver struct {
	mapping *model.Mapping
	github  interfaces.GitHubClient
	pypi    interfaces.PyPIClient
}

// NewResolver creates the release resolution use case
func NewResolver(mapping *model.Mapping, gh interfaces.GitHubClient, pypi interfaces.PyPIClient) interfaces.ResolverUseCase {
	return &resolver{
		mapping: mapping,
		github:  gh,
		pypi:    pypi,
	}
}

// GetLatestRelease resolves the name, queries GitHub and falls back to the
// configured PyPI package when GitHub has no qualifying release. Each
// source is queried at most once; transport and rate-limit failures never
// trigger the fallback. Every outcome is rendered as a result string.
func (uc *resolver) GetLatestRelease(ctx context.Context, name string) string {
	logger := ctxlog.From(ctx)

	entry := uc.mapping.Resolve(name)
	if entry == nil {
		logger.Info("Unknown repository name", "name", name)
		return fmt.Sprintf("Error: unknown repository %q. Add it to the repository mapping or use the owner/repo form.", name)
	}

	rel, err := uc.github.LatestRelease(ctx, entry.Owner, entry.Repo)
	if err == nil {
		logger.Info("Resolved latest release from GitHub",
			"name", name,
			"repository", entry.FullName(),
			"tag", rel.TagName,
		)
		return formatRelease(rel)
	}

	if !goerr.HasTag(err, types.TagNotFound) {
		logger.Error("GitHub release query failed",
			"error", err,
			"name", name,
			"repository", entry.FullName(),
		)
		return fmt.Sprintf("Error: failed to query GitHub releases for %s: %v", entry.FullName(), err)
	}

	if entry.PyPIPackage == "" {
		logger.Info("No stable release and no PyPI fallback configured",
			"name", name,
			"repository", entry.FullName(),
		)
		return fmt.Sprintf("No stable release found for %s.", entry.FullName())
	}

	pkg, perr := uc.pypi.LatestVersion(ctx, entry.PyPIPackage)
	if perr != nil {
		logger.Warn("PyPI fallback yielded no result",
			"error", perr,
			"name", name,
			"package", entry.PyPIPackage,
		)
		return fmt.Sprintf("No stable release found for %s, and the PyPI fallback package %q had no stable version either.",
			entry.FullName(), entry.PyPIPackage)
	}

	logger.Info("Resolved latest version via PyPI fallback",
		"name", name,
		"repository", entry.FullName(),
		"package", pkg.Name,
		"version", pkg.Version,
	)
	return fmt.Sprintf("No GitHub release found for %s; result comes from the PyPI fallback.\n%s",
		entry.FullName(), formatPyPI(pkg))
}

// GetPyPIVersion queries PyPI directly, bypassing the mapping and GitHub.
func (uc *resolver) GetPyPIVersion(ctx context.Context, pkgName string) string {
	logger := ctxlog.From(ctx)

	pkg, err := uc.pypi.LatestVersion(ctx, pkgName)
	if err != nil {
		if goerr.HasTag(err, types.TagNotFound) {
			logger.Info("No stable PyPI version", "package", pkgName)
			return fmt.Sprintf("No stable version found for PyPI package %q.", pkgName)
		}
		logger.Error("PyPI version query failed", "error", err, "package", pkgName)
		return fmt.Sprintf("Error: failed to query PyPI for %q: %v", pkgName, err)
	}

	logger.Info("Resolved latest PyPI version",
		"package", pkg.Name,
		"version", pkg.Version,
	)
	return formatPyPI(pkg)
}
