// Package config loads server configuration for the chat relay.
//
// Configuration is resolved in three layers, later layers overriding earlier
// ones:
//  1. Built-in defaults (Default)
//  2. An optional JSON config file (Load)
//  3. Environment variables (CHAT_HOST, CHAT_PORT, CHAT_DB, CHAT_JWT_SECRET)
//
// Validate rejects configurations the coordinator cannot run with, such as
// non-positive message caps or an empty default room.
package config
