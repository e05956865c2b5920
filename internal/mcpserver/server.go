// Package mcpserver exposes the engagement tracker as MCP tools over stdio,
// so assistants can read streaks and credit focus time.
package mcpserver

import (
	"context"
	"io"

	"github.com/alexanderramin/neuralplan/internal/service"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered.
func New(engagement service.EngagementService) *server.MCPServer {
	s := server.NewMCPServer(
		"neuralplan",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	status := NewStatusTool(engagement)
	s.AddTool(status.Definition(), status.Handle)

	focusLog := NewFocusLogTool(engagement)
	s.AddTool(focusLog.Definition(), focusLog.Handle)

	badges := NewBadgesTool(engagement)
	s.AddTool(badges.Definition(), badges.Handle)

	return s
}

// Serve runs s on the given streams until ctx is done or stdin closes.
func Serve(ctx context.Context, s *server.MCPServer, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, stdin, stdout)
}

const instructions = `neuralplan tracks daily engagement for a neuro-inclusive planner.
Use engagement_status to see streaks, focus load and the next badge.
Use focus_log only after the user has actually finished a focus block.`
