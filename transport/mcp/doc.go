// Package mcp serves the Spline MCP server over stdio or HTTP.
//
// NewServer assembles the tool registry, the resource catalog and the
// prompts into one mcp-go server. NewMinimalServer is a dependency-free
// smoke test with a single hello tool and the spline://test resource.
//
// Over stdio there is one implicit session for the life of the process.
// Over HTTP, HTTPHandler tracks a session per client:
//
//	POST   /mcp   no Mcp-Session-Id: new session, id returned in the header
//	POST   /mcp   known id: dispatch the JSON-RPC message in that session
//	GET    /mcp   known id: server-sent events carrying notifications
//	DELETE /mcp   known id: close the session; the id is never reused
//
// GET or DELETE with a missing or unknown id is answered with 400 and the
// body "Invalid or missing session ID". RunSweeper closes idle sessions.
//
// Usage:
//
//	srv := mcp.NewServer(registry, catalog)
//	mcp.ServeStdio(srv, logger)
//
//	handler := mcp.NewHTTPHandler(srv, session.NewStore(), logger)
//	go handler.RunSweeper(ctx, 24*time.Hour, time.Hour)
//	http.ListenAndServe(":3000", handler)
package mcp
