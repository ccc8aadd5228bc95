package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/hngkr/releases-mcp/pkg/domain/model"
)

// formatRelease renders a GitHub release in the shape the tool contract
// promises: version, tag, publish date, source URL and origin label.
func formatRelease(rel *model.ReleaseInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Latest stable release for %s/%s:\n", rel.Owner, rel.Repo)
	fmt.Fprintf(&b, "Version: %s\n", rel.Version)
	fmt.Fprintf(&b, "Tag: %s\n", rel.TagName)
	if rel.ReleaseName != "" {
		fmt.Fprintf(&b, "Name: %s\n", rel.ReleaseName)
	}
	if !rel.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "Published at: %s\n", rel.PublishedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "URL: %s\n", rel.URL)
	fmt.Fprintf(&b, "Source: %s", rel.Source())
	return b.String()
}

func formatPyPI(pkg *model.PyPIVersionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Latest stable version of %s on PyPI:\n", pkg.Name)
	fmt.Fprintf(&b, "Version: %s\n", pkg.Version)
	if pkg.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", pkg.Summary)
	}
	if pkg.Homepage != "" {
		fmt.Fprintf(&b, "Homepage: %s\n", pkg.Homepage)
	}
	fmt.Fprintf(&b, "URL: %s\n", pkg.ProjectURL)
	fmt.Fprintf(&b, "Source: %s", pkg.Source())
	return b.String()
}
