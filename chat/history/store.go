package history

import (
	"context"
	"time"
)

// Message is one persisted room chat message.
type Message struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"ts"`
}

// Store persists room messages and serves the join-time backlog.
type Store interface {
	// Append persists a single message.
	Append(ctx context.Context, msg Message) error

	// Recent returns up to limit messages for a room, oldest first.
	Recent(ctx context.Context, room string, limit int) ([]Message, error)
}
