package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPyQAMCPServer creates a new MCP server with all PyQA tools
// registered. The projectPath is the root directory of the project to
// inspect.
func NewPyQAMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"pyqa",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
