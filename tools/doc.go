// Package tools declares the MCP tool catalog for the Spline API.
//
// Each tool is a Spec: an mcp.Tool schema, a verb phrase for error text and
// a handler returning plain text. The Registry wraps every handler so that
// upstream failures and panics become isError results reading
// "Error <verb>: <message>", and validates arguments against the tool schema
// before the handler runs.
//
//	reg := tools.New(tools.Deps{Spline: client})
//	srv := server.NewMCPServer("spline", "1.0.0",
//		server.WithToolHandlerMiddleware(reg.ValidationMiddleware))
//	reg.Register(srv)
package tools
