// Package service exposes the read-side of the chat relay to the REST API
// and the MCP admin transport.
//
// ChatService never mutates coordinator state; live mutations only happen
// through websocket events. The service answers queries about rooms,
// presence counts, recent history, and server-wide stats.
package service
