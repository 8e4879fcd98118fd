// Package history stores room chat messages and replays a bounded backlog
// to newly joined connections.
//
// The history package implements:
//   - A Store interface consumed by the session coordinator
//   - A SQLite-backed store for durable room history
//   - An in-memory store for tests and ephemeral deployments
//
// Stranger (anonymous pairing) messages are never written here; only room
// messages are retained.
//
// Usage:
//
//	db, _ := sql.Open("sqlite3", "chat.db")
//	store, err := history.NewSQLiteStore(db)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store.Append(ctx, msg)
//	backlog, _ := store.Recent(ctx, "general", 30)
//
// Recent returns messages oldest first so callers can replay them in order.
package history
