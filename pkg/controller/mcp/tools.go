package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hngkr/releases-mcp/pkg/protocol"
)

const (
	toolGetLatestRelease = "get_latest_release"
	toolGetPyPIVersion   = "get_pypi_version"
)

func toolList() []protocol.Tool {
	return []protocol.Tool{
		{
			Name: toolGetLatestRelease,
			Description: "Get the latest stable release of a GitHub repository. " +
				"Accepts a configured product alias (e.g. 'nomad') or a literal owner/repo " +
				"(e.g. 'hashicorp/nomad'). Falls back to PyPI when the repository publishes no releases.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {
						"type": "string",
						"description": "Product alias or owner/repo of the repository"
					}
				},
				"required": ["name"]
			}`),
		},
		{
			Name:        toolGetPyPIVersion,
			Description: "Get the latest stable version of a package on PyPI.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"package": {
						"type": "string",
						"description": "PyPI package name"
					}
				},
				"required": ["package"]
			}`),
		},
	}
}

// callTool executes a tool by name. Tool-level failures come back as text
// results flagged isError; only malformed requests become JSON-RPC errors.
func (h *Handler) callTool(ctx context.Context, name string, args json.RawMessage) (*protocol.CallToolResult, error) {
	switch name {
	case toolGetLatestRelease:
		var in struct {
			Name string `json:"name"`
		}
		if err := unmarshalArgs(args, &in); err != nil {
			return nil, err
		}
		if strings.TrimSpace(in.Name) == "" {
			return nil, fmt.Errorf("argument %q is required", "name")
		}
		text := h.resolver.GetLatestRelease(ctx, in.Name)
		return protocol.TextResult(text, strings.HasPrefix(text, "Error:")), nil

	case toolGetPyPIVersion:
		var in struct {
			Package string `json:"package"`
		}
		if err := unmarshalArgs(args, &in); err != nil {
			return nil, err
		}
		if strings.TrimSpace(in.Package) == "" {
			return nil, fmt.Errorf("argument %q is required", "package")
		}
		text := h.resolver.GetPyPIVersion(ctx, in.Package)
		return protocol.TextResult(text, strings.HasPrefix(text, "Error:")), nil

	default:
		return nil, fmt.Errorf("tool not found: %s", name)
	}
}

func unmarshalArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return fmt.Errorf("tool arguments are required")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}
