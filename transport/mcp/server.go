package mcp

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/splinemcp/prompts"
	"github.com/wricardo/mcp-training/splinemcp/resources"
	"github.com/wricardo/mcp-training/splinemcp/tools"
)

const (
	ServerName        = "Spline.design MCP Server"
	MinimalServerName = "Spline Minimal"
	Version           = "1.0.0"
)

const instructions = `Spline.design MCP Server

Tools manage scenes, objects, materials, states, events, physics, particles,
layers, snapshots and multi-scene projects through the Spline API, and
generate @splinetool/runtime code.

Resources under spline:// render scenes and their contents as markdown, e.g.
spline://scenes or spline://scene/{sceneId}/objects.

Prompts walk through common tasks such as create-rotation-animation or
setup-data-visualization.`

// NewServer builds the full MCP server. Tool arguments are validated against
// each tool's schema before its handler runs.
func NewServer(reg *tools.Registry, catalog *resources.Catalog) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(reg.ValidationMiddleware),
		server.WithInstructions(instructions),
	)

	reg.Register(s)
	catalog.Register(s)
	prompts.Register(s)
	return s
}

// NewMinimalServer builds a smoke-test server with a single tool and
// resource and no upstream dependency.
func NewMinimalServer() *server.MCPServer {
	s := server.NewMCPServer(
		MinimalServerName,
		Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("hello",
		mcp.WithDescription("Check that the server is running"),
		mcp.WithString("name", mcp.Description("Who to greet (optional)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if name := req.GetString("name", ""); name != "" {
			return mcp.NewToolResultText("Hello, " + name + "!"), nil
		}
		return mcp.NewToolResultText("Hello from Spline.design MCP Server! The server is running correctly."), nil
	})

	s.AddResource(mcp.NewResource("spline://test", "test",
		mcp.WithResourceDescription("Static test resource"),
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     "This is a test resource. The MCP server is working correctly!",
		}}, nil
	})
	return s
}

// ServeStdio runs s over stdin and stdout until EOF or a signal. Stdout
// carries protocol frames only, so errors go to logger or stderr.
func ServeStdio(s *server.MCPServer, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return server.ServeStdio(s, server.WithErrorLogger(logger))
}
