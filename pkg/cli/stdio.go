package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/hngkr/releases-mcp/pkg/cli/config"
	"github.com/hngkr/releases-mcp/pkg/controller/mcp"
)

func cmdStdio() *cli.Command {
	var (
		githubCfg  config.GitHub
		mappingCfg config.Mapping
	)

	flags := append(githubCfg.Flags(), mappingCfg.Flags()...)

	return &cli.Command{
		Name:  "stdio",
		Usage: "Serve MCP over stdin/stdout",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			resolver, err := buildResolver(ctx, &githubCfg, &mappingCfg)
			if err != nil {
				return err
			}

			logger.Info("Serving MCP on stdio")
			handler := mcp.NewHandler(resolver)
			return handler.ServeStream(ctx, os.Stdin, os.Stdout)
		},
	}
}
