package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/ctxlog"

	"github.com/hngkr/releases-mcp/pkg/protocol"
)

// maxLineSize bounds a single JSON-RPC message on the stdio transport
const maxLineSize = 1 << 20

// ServeStream runs the newline-delimited JSON-RPC loop used by the stdio
// transport. It returns when the reader is exhausted, the context is
// cancelled, or a write fails.
func (h *Handler) ServeStream(ctx context.Context, r io.Reader, w io.Writer) error {
	logger := ctxlog.From(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			logger.Warn("Dropping unparsable request", "error", err)
			if err := encoder.Encode(&protocol.Response{
				JSONRPC: protocol.JSONRPCVersion,
				Error:   &protocol.Error{Code: protocol.CodeParseError, Message: "parse error"},
			}); err != nil {
				return err
			}
			continue
		}

		resp := h.Handle(ctx, &req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}
