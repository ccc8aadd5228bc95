package config

import "github.com/urfave/cli/v3"

// Mapping holds the repository mapping file configuration
type Mapping struct {
	Path string
}

// Flags returns CLI flags for the mapping file
func (c *Mapping) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mapping",
			Usage:       "Path to the repository mapping TOML file",
			Value:       "repo_mapping.toml",
			Destination: &c.Path,
			Sources:     cli.EnvVars("RELEASES_MCP_MAPPING"),
		},
	}
}
