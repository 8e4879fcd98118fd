package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/coordinator"
	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
)

// nullTransport satisfies coordinator.Transport; the read-side tests never
// inspect deliveries.
type nullTransport struct{}

func (nullTransport) Send(string, coordinator.Event) {}
func (nullTransport) Alive(string) bool              { return true }

func newTestService(t *testing.T) (ChatService, *coordinator.Coordinator, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore()
	coord := coordinator.New(nullTransport{}, store, coordinator.DefaultLimits())
	return NewChatService(coord, store), coord, store
}

func join(t *testing.T, coord *coordinator.Coordinator, username, room string) string {
	t.Helper()
	id, err := coord.Register(username)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	coord.Join(context.Background(), id, room)
	return id
}

func TestListRooms(t *testing.T) {
	svc, coord, _ := newTestService(t)
	ctx := context.Background()

	join(t, coord, "alice", "general")
	join(t, coord, "bob", "general")
	join(t, coord, "carol", "dev")

	rooms, err := svc.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(rooms))
	}
	// Sorted by name.
	if rooms[0].Name != "dev" || rooms[0].Members != 1 {
		t.Errorf("Expected dev with 1 member, got %+v", rooms[0])
	}
	if rooms[1].Name != "general" || rooms[1].Members != 2 {
		t.Errorf("Expected general with 2 members, got %+v", rooms[1])
	}
}

func TestRoomInfo(t *testing.T) {
	svc, coord, _ := newTestService(t)
	ctx := context.Background()

	join(t, coord, "alice", "general")

	t.Run("live room", func(t *testing.T) {
		info, err := svc.RoomInfo(ctx, "general")
		if err != nil {
			t.Fatalf("RoomInfo failed: %v", err)
		}
		if info.Members != 1 {
			t.Errorf("Expected 1 member, got %d", info.Members)
		}
	})

	t.Run("missing room", func(t *testing.T) {
		if _, err := svc.RoomInfo(ctx, "ghost"); !errors.Is(err, ErrRoomNotFound) {
			t.Errorf("Expected ErrRoomNotFound, got %v", err)
		}
	})
}

func TestRecentMessages(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"one", "two", "three"} {
		msg := history.Message{
			ID:        text,
			Room:      "general",
			Username:  "alice",
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Append(ctx, msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	t.Run("oldest first", func(t *testing.T) {
		msgs, err := svc.RecentMessages(ctx, "general", 10)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if len(msgs) != 3 || msgs[0].Text != "one" {
			t.Errorf("Expected 3 messages oldest first, got %+v", msgs)
		}
	})

	t.Run("zero limit uses the cap", func(t *testing.T) {
		msgs, err := svc.RecentMessages(ctx, "general", 0)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if len(msgs) != 3 {
			t.Errorf("Expected 3 messages, got %d", len(msgs))
		}
	})

	t.Run("empty room yields empty slice", func(t *testing.T) {
		msgs, err := svc.RecentMessages(ctx, "ghost", 10)
		if err != nil {
			t.Fatalf("RecentMessages failed: %v", err)
		}
		if msgs == nil || len(msgs) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", msgs)
		}
	})
}

func TestStats(t *testing.T) {
	svc, coord, _ := newTestService(t)
	ctx := context.Background()

	a := join(t, coord, "alice", "general")
	_ = a
	b, _ := coord.Register("bob")
	coord.FindPartner(b)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Connections != 2 {
		t.Errorf("Expected 2 connections, got %d", stats.Connections)
	}
	if stats.Rooms != 1 {
		t.Errorf("Expected 1 room, got %d", stats.Rooms)
	}
	if stats.Waiting != 1 {
		t.Errorf("Expected 1 waiting, got %d", stats.Waiting)
	}
	if stats.Uptime == "" {
		t.Error("Expected non-empty uptime")
	}
}
