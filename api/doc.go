// Package api provides HTTP REST API handlers for the chat relay.
//
// The api package implements:
//   - Account registration and login
//   - Read-only room and presence queries
//   - Recent history retrieval per room
//   - Server-wide stats
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Accounts:
//   - POST /api/register - Create an account
//   - POST /api/login - Exchange credentials for a token
//
// Rooms:
//   - GET /api/rooms - List live rooms with member counts
//   - GET /api/rooms/{name} - Get one room's presence count
//   - GET /api/rooms/{name}/messages - Recent messages, oldest first
//
// Operations:
//   - GET /api/stats - Connection, room, and pairing counters
//   - GET /healthz - Liveness probe
//   - GET /ws - WebSocket upgrade (token via ?token=)
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Credentials are sent as POST with
// JSON body:
//
//	{
//	  "username": "alice",
//	  "password": "secret"
//	}
//
// Usage:
//
//	server := api.NewServer(chatService, identityService, hub)
//	http.ListenAndServe(addr, server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
