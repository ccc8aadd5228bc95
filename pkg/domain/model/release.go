package model

import "time"

// ReleaseInfo represents the latest stable release selected from GitHub.
// Constructed per query; never cached.
type ReleaseInfo struct {
	Owner       string    // Repository owner
	Repo        string    // Repository name
	TagName     string    // Release tag name
	Version     string    // Version identifier derived from the tag
	ReleaseName string    // Release display name
	PublishedAt time.Time // Publish timestamp reported by GitHub
	URL         string    // Release HTML URL
}

// Source returns the origin label for formatting
func (r *ReleaseInfo) Source() string { return "github" }

// PyPIVersionInfo represents the latest stable version of a PyPI package.
type PyPIVersionInfo struct {
	Name       string // Package name as reported by PyPI
	Version    string // Highest stable version
	Summary    string // Short description (may be empty)
	Homepage   string // Homepage URL (may be empty)
	ProjectURL string // pypi.org project page for the selected version
}

// Source returns the origin label for formatting
func (p *PyPIVersionInfo) Source() string { return "pypi" }
