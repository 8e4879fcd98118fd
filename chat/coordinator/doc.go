// Package coordinator is the connection-state core of the chat relay.
//
// The coordinator package implements:
//   - Connection registry: live connection ID -> per-connection state
//   - Room directory: room name -> member set, with presence counts
//   - Pairing pool: FIFO waiting queue plus active stranger pairing links
//   - Event broadcaster: typed fan-out to a connection, a room, or a pair
//   - Session coordinator: the single entry point that mutates all of the
//     above in response to inbound events
//
// Concurrency:
//
// All shared state lives behind one mutex owned by the Coordinator. Room
// join sequences (leave old, enter new, notify) and pairing sequences (pop
// candidate, verify liveness, bind) are multi-step; serializing them keeps
// partially-applied transitions from ever being observable. Transport sends
// and history-store I/O happen strictly after the lock is released: each
// operation builds a delivery plan under the lock and flushes it afterwards.
//
// Lifecycle:
//
// A connection registers once with a verified username, may occupy at most
// one room, and may independently hold at most one pairing link. Teardown is
// funneled through idempotent paths so an explicit leave racing a transport
// disconnect cleans up exactly once.
//
// Usage:
//
//	coord := coordinator.New(hub, store, coordinator.DefaultLimits())
//	id, err := coord.Register("alice")
//	coord.Join(ctx, id, "general")
//	coord.SendRoomMessage(ctx, id, "hello")
//	coord.Disconnect(id)
package coordinator
