package history

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func testMessage(id, room, text string, at time.Time) Message {
	return Message{
		ID:        id,
		Room:      room,
		Username:  "alice",
		Text:      text,
		CreatedAt: at,
	}
}

func TestMemoryStore_AppendAndRecent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		msg := testMessage(fmt.Sprintf("id-%d", i), "general", fmt.Sprintf("msg %d", i), base.Add(time.Duration(i)*time.Second))
		if err := store.Append(ctx, msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	t.Run("oldest first", func(t *testing.T) {
		msgs, err := store.Recent(ctx, "general", 30)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(msgs) != 5 {
			t.Fatalf("Expected 5 messages, got %d", len(msgs))
		}
		if msgs[0].Text != "msg 0" || msgs[4].Text != "msg 4" {
			t.Errorf("Expected oldest-first ordering, got %q .. %q", msgs[0].Text, msgs[4].Text)
		}
	})

	t.Run("limit keeps newest", func(t *testing.T) {
		msgs, err := store.Recent(ctx, "general", 2)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(msgs) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].Text != "msg 3" || msgs[1].Text != "msg 4" {
			t.Errorf("Expected the two newest messages oldest first, got %q, %q", msgs[0].Text, msgs[1].Text)
		}
	})

	t.Run("unknown room is empty", func(t *testing.T) {
		msgs, err := store.Recent(ctx, "nope", 30)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(msgs) != 0 {
			t.Errorf("Expected empty backlog, got %d messages", len(msgs))
		}
	})
}

func TestMemoryStore_CapsRetention(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < maxRetainedPerRoom+10; i++ {
		msg := testMessage(fmt.Sprintf("id-%d", i), "busy", fmt.Sprintf("msg %d", i), base.Add(time.Duration(i)*time.Second))
		if err := store.Append(ctx, msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	msgs, err := store.Recent(ctx, "busy", maxRetainedPerRoom*2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(msgs) != maxRetainedPerRoom {
		t.Errorf("Expected retention cap of %d, got %d", maxRetainedPerRoom, len(msgs))
	}
	if msgs[len(msgs)-1].Text != fmt.Sprintf("msg %d", maxRetainedPerRoom+9) {
		t.Errorf("Expected newest message to survive the cap, got %q", msgs[len(msgs)-1].Text)
	}
}

func TestSQLiteStore_AppendAndRecent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	defer db.Close()

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		msg := testMessage(fmt.Sprintf("id-%d", i), "dev", fmt.Sprintf("msg %d", i), base.Add(time.Duration(i)*time.Second))
		if err := store.Append(ctx, msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	// A message in another room must not leak into the backlog.
	other := testMessage("other-1", "random", "elsewhere", base)
	if err := store.Append(ctx, other); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	msgs, err := store.Recent(ctx, "dev", 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "msg 1" || msgs[2].Text != "msg 3" {
		t.Errorf("Expected newest 3 oldest-first, got %q .. %q", msgs[0].Text, msgs[2].Text)
	}
	for _, msg := range msgs {
		if msg.Room != "dev" {
			t.Errorf("Message from room %q leaked into dev backlog", msg.Room)
		}
	}
}

func TestSQLiteStore_RejectsDuplicateID(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	defer db.Close()

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	msg := testMessage("dup", "general", "hello", time.Now())
	if err := store.Append(ctx, msg); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	if err := store.Append(ctx, msg); err == nil {
		t.Error("Expected duplicate message ID to be rejected")
	}
}
