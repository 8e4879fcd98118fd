// Package mcp provides a Model Context Protocol server for the chat relay.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Read-only tools over rooms, history, and server stats
//   - Account creation for agents that need a WebSocket identity
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_rooms: List live rooms with member counts
//   - room_info: Get one room's presence count
//   - recent_messages: Recent persisted messages for a room, oldest first
//   - server_stats: Connection, room, and pairing counters
//   - register_user: Create a chat account
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Proxy Design:
//
// The MCP server never holds chat state. Every tool call is proxied to the
// REST API, so stdio-mode MCP can point at any running relay. Live messaging
// is deliberately out of reach: sending and receiving chat traffic requires
// a WebSocket connection with a valid token.
//
// Usage:
//
//	// Stdio mode
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	httpServer := server.NewStreamableHTTPServer(client.GetMCPServer())
//	router.PathPrefix("/mcp").Handler(httpServer)
package mcp
