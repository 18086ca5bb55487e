// Package session tracks the client sessions of the streamable HTTP MCP
// transport.
//
// A Store hands out Sessions with random UUID identifiers. Each Session
// implements server.ClientSession from mcp-go, so once registered with the
// MCP server it receives that client's notifications on a buffered channel.
//
// Lifecycle:
//
//	store := session.NewStore()
//
//	sess := store.Create()           // POST /mcp without Mcp-Session-Id
//	sess, err := store.Get(id)       // later requests, ErrSessionNotFound if unknown
//	err = store.Remove(id)           // DELETE /mcp, id is never valid again
//
// Removing a session closes its Done channel, which ends any open SSE stream.
// CleanupExpired drops sessions idle for longer than a given age and is run
// periodically by the HTTP transport.
//
// All Store methods are safe for concurrent use.
package session
