package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hngkr/releases-mcp/pkg/cli/config"
	controller "github.com/hngkr/releases-mcp/pkg/controller/http"
	"github.com/hngkr/releases-mcp/pkg/domain/interfaces"
	"github.com/hngkr/releases-mcp/pkg/domain/model"
	githubinfra "github.com/hngkr/releases-mcp/pkg/infra/github"
	"github.com/hngkr/releases-mcp/pkg/infra/pypi"
	"github.com/hngkr/releases-mcp/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		githubCfg  config.GitHub
		mappingCfg config.Mapping
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, mappingCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the MCP server over HTTP",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			resolver, err := buildResolver(ctx, &githubCfg, &mappingCfg)
			if err != nil {
				return err
			}

			server, err := controller.NewServer(
				ctx,
				resolver,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// buildResolver loads the mapping table and wires the infra clients into
// the resolution use case. A bad mapping file aborts startup here.
func buildResolver(ctx context.Context, githubCfg *config.GitHub, mappingCfg *config.Mapping) (interfaces.ResolverUseCase, error) {
	logger := ctxlog.From(ctx)

	mapping, err := model.LoadMapping(mappingCfg.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded repository mapping",
		slog.String("path", mappingCfg.Path),
		slog.Int("keys", mapping.Len()),
	)

	if githubCfg.Token == "" {
		logger.Info("No GitHub token configured, using unauthenticated rate limit")
	}
	ghClient, err := githubinfra.NewClient(githubinfra.WithToken(githubCfg.Token))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}

	return usecase.NewResolver(mapping, ghClient, pypi.NewClient()), nil
}
