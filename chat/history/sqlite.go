package history

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	room       TEXT NOT NULL,
	username   TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_room_created ON messages (room, created_at);
`

// SQLiteStore persists messages in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the message table if needed and returns the store.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create messages schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, msg Message) error {
	query := "INSERT INTO messages (id, room, username, content, created_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := s.db.ExecContext(ctx, query, msg.ID, msg.Room, msg.Username, msg.Text, msg.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, room string, limit int) ([]Message, error) {
	if limit <= 0 {
		return []Message{}, nil
	}

	query := `
		SELECT id, room, username, content, created_at
		FROM messages
		WHERE room = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, room, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages for room %s: %w", room, err)
	}
	defer rows.Close()

	var newestFirst []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Room, &msg.Username, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		newestFirst = append(newestFirst, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages for room %s: %w", room, err)
	}

	// The query reads newest first for the LIMIT; callers expect oldest first.
	result := make([]Message, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		result = append(result, newestFirst[i])
	}
	return result, nil
}
