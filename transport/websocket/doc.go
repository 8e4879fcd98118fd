// Package websocket provides the WebSocket transport for the chat relay.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Token-gated connection establishment
//   - Event delivery on behalf of the coordinator
//   - Connection lifecycle management
//   - Inbound frame decoding and routing
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub tracks all
// WebSocket connections by connection ID. Each client connection is handled
// by a pair of goroutines (read pump, write pump) that manage reading,
// writing, and cleanup. The Hub implements coordinator.Transport, so the
// coordinator never touches a raw connection.
//
// Message Protocol:
//
// Frames are JSON-encoded in both directions with the same envelope:
//   - Incoming: {"event": "chatMessage", "data": {"text": "hello"}}
//   - Outgoing: {"event": "presence", "data": {"room": "general", "count": 3}}
//
// Authentication:
//
// Clients present a token via query parameter (?token=...) when establishing
// the connection. A missing or invalid token yields one unauthorized event
// followed by connection close; nothing is registered with the coordinator.
//
// Usage:
//
//	hub := websocket.NewHub()
//	coord := coordinator.New(hub, store, limits)
//	hub.Bind(coord, identityService)
//	http.HandleFunc("/ws", hub.ServeWS)
//
// Connection Lifecycle:
//
// 1. Client connects with a token
// 2. Token verified, connection registered with the coordinator
// 3. Client sends events, receives room and pairing traffic
// 4. Disconnection triggers coordinator cleanup (room leave, pairing teardown)
//
// Concurrency:
//
// The hub guards its client map with a mutex and never calls into the
// coordinator while holding it. Delivery to a slow client never blocks the
// coordinator; the client is dropped instead.
package websocket
