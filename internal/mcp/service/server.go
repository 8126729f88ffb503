// Package service wires the MCP server runtime over the timer service.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	timerservice "github.com/louisbranch/tempo/internal/timer/service"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Tempo MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	// Service executes timer operations.
	Service *timerservice.Service
	// OwnerID is the identity every MCP operation runs under. MCP sessions
	// are single-user; the identity comes from deployment configuration,
	// never from tool input.
	OwnerID string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server exposing timer tools and resources.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("timer service is required")
	}
	ownerID := strings.TrimSpace(cfg.OwnerID)
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{})
	registerTimerTools(mcpServer, cfg.Service, ownerID)
	registerTimerResources(mcpServer, cfg.Service, ownerID)

	return &Server{mcpServer: mcpServer}, nil
}

// Run creates and serves the MCP server on stdio until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs the MCP server over the stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
