// Package mcp implements the Model Context Protocol tool surface over
// JSON-RPC 2.0. The same handler backs both the stdio and HTTP transports.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"

	"github.com/hngkr/releases-mcp/pkg/domain/interfaces"
	"github.com/hngkr/releases-mcp/pkg/domain/types"
	"github.com/hngkr/releases-mcp/pkg/protocol"
)

// Handler dispatches MCP requests to the resolver use case
type Handler struct {
	resolver interfaces.ResolverUseCase
}

// NewHandler creates an MCP request handler
func NewHandler(resolver interfaces.ResolverUseCase) *Handler {
	return &Handler{resolver: resolver}
}

// Handle processes a single JSON-RPC request. Notifications return nil.
func (h *Handler) Handle(ctx context.Context, req *protocol.Request) *protocol.Response {
	resp := &protocol.Response{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      req.ID,
	}

	switch req.Method {
	case "initialize":
		result, err := h.handleInitialize(req)
		if err != nil {
			resp.Error = &protocol.Error{Code: protocol.CodeInvalidParams, Message: err.Error()}
		} else {
			resp.Result = result
		}

	case "ping":
		resp.Result = map[string]any{}

	case "tools/list":
		resp.Result = &protocol.ListToolsResult{Tools: toolList()}

	case "tools/call":
		result, err := h.handleCallTool(ctx, req)
		if err != nil {
			resp.Error = &protocol.Error{Code: protocol.CodeInternalError, Message: err.Error()}
		} else {
			resp.Result = result
		}

	case "notifications/initialized":
		return nil

	default:
		if req.IsNotification() {
			return nil
		}
		resp.Error = &protocol.Error{
			Code:    protocol.CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}
	}

	return resp
}

func (h *Handler) handleInitialize(req *protocol.Request) (*protocol.InitializeResult, error) {
	var params protocol.InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, fmt.Errorf("failed to parse initialize request: %w", err)
		}
	}

	return &protocol.InitializeResult{
		ProtocolVersion: negotiateVersion(params.ProtocolVersion),
		ServerInfo: protocol.ServerInfo{
			Name:    types.ServiceName,
			Version: types.Version,
		},
	}, nil
}

// negotiateVersion echoes a supported client revision, otherwise answers
// with the server's own revision per the MCP negotiation rules.
func negotiateVersion(clientVersion string) string {
	for _, v := range supportedProtocolVersions {
		if clientVersion == v {
			return v
		}
	}
	return protocol.ProtocolVersion
}

var supportedProtocolVersions = []string{
	"2025-03-26",
	"2024-11-05",
}

func (h *Handler) handleCallTool(ctx context.Context, req *protocol.Request) (result *protocol.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool execution panicked: %v", r)
			ctxlog.From(ctx).Error("tool panic recovered",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	var params protocol.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("failed to parse tool call request: %w", err)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("tool name is required")
	}

	ctxlog.From(ctx).Debug("Tool call", "tool", params.Name)

	return h.callTool(ctx, params.Name, params.Arguments)
}
