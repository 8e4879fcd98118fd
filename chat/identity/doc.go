// Package identity authenticates users for the chat relay.
//
// The identity package implements:
//   - User registration with bcrypt password hashing
//   - Credential verification and JWT access-token issuance
//   - Token verification at websocket accept time
//
// The session coordinator never sees passwords or tokens; it only receives
// the username resolved by Verify. A connection whose token does not verify
// is rejected before any coordinator state is created.
package identity
