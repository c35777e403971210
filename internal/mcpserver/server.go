// Package mcpserver exposes the canvas tool catalogue to MCP agents over
// stdio. The catalogue's schemas are reused verbatim, and typed tool
// failures come back as tool results rather than protocol errors so the
// agent can read the error kind and react (confirm, disambiguate, re-query).
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/flemzord/easel/internal/tool"
)

// Config wires an MCP server.
type Config struct {
	// Registry supplies the catalogue exposed to the agent. Required.
	Registry *tool.Registry

	// Dispatcher executes the calls. Required.
	Dispatcher *tool.Dispatcher

	// Version is reported in the MCP handshake.
	Version string

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Server is the stdio MCP surface for one session.
type Server struct {
	mcp        *server.MCPServer
	dispatcher *tool.Dispatcher
	logger     *slog.Logger
}

// New builds an MCP server exposing every registered tool.
func New(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("mcpserver: registry is required")
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("mcpserver: dispatcher is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		mcp: server.NewMCPServer(
			"easel",
			version,
			server.WithToolCapabilities(true),
		),
		dispatcher: cfg.Dispatcher,
		logger:     logger,
	}

	for _, info := range cfg.Registry.List() {
		s.mcp.AddTool(
			mcp.NewToolWithRawSchema(info.Name, describe(info), info.Schema.JSONSchema()),
			s.handler(info.Name),
		)
	}
	return s, nil
}

// describe augments destructive tools so the agent knows about the
// confirmation gate before its first refused call.
func describe(info tool.ToolInfo) string {
	if !info.Destructive {
		return info.Description
	}
	return fmt.Sprintf("%s Destructive: refused unless called with %s: true.",
		info.Description, tool.ConfirmParam)
}

// handler adapts one catalogue tool to the MCP call shape.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := s.dispatcher.Dispatch(ctx, tool.Call{
			Tool:   name,
			Params: req.GetArguments(),
		})

		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("mcpserver: marshal result: %w", err)
		}

		res := mcp.NewToolResultText(string(data))
		res.IsError = !result.Success
		return res, nil
	}
}

// ServeStdio serves the MCP protocol on stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	s.logger.Info("mcp stdio server starting")
	return server.ServeStdio(s.mcp)
}
