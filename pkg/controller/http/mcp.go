package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"

	"github.com/hngkr/releases-mcp/pkg/controller/mcp"
	"github.com/hngkr/releases-mcp/pkg/protocol"
)

// MCPHandler bridges HTTP requests to the MCP message handler
type MCPHandler struct {
	handler *mcp.Handler
}

// NewMCPHandler creates an HTTP adapter for the MCP handler
func NewMCPHandler(handler *mcp.Handler) *MCPHandler {
	return &MCPHandler{handler: handler}
}

// Handle processes one JSON-RPC message per POST. Notifications are
// acknowledged with 202 and no body.
func (h *MCPHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req protocol.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid MCP request body", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(&protocol.Response{
			JSONRPC: protocol.JSONRPCVersion,
			Error:   &protocol.Error{Code: protocol.CodeParseError, Message: "parse error"},
		}); err != nil {
			logger.Error("Failed to encode parse error response", "error", err)
		}
		return
	}

	resp := h.handler.Handle(ctx, &req)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode MCP response", "error", err)
	}
}
