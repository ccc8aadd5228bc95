package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub API configuration. The token is optional; without it
// requests run unauthenticated against the lower rate limit.
type GitHub struct {
	Token string `masq:"secret"`
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (optional, raises the rate limit)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELEASES_MCP_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
	}
}
