// Package mcp exposes the analyzer over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with the boundary tools registered for
// the given project root.
func NewServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"boundary",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	registerTools(s, projectPath)
	return s
}
