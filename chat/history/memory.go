package history

import (
	"context"
	"sync"
)

// maxRetainedPerRoom bounds how many messages the in-memory store keeps per
// room. Older entries are discarded once the cap is reached.
const maxRetainedPerRoom = 500

// MemoryStore keeps recent messages in memory. It backs the -memory server
// flag and the test suites.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string][]Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string][]Message),
	}
}

func (s *MemoryStore) Append(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.rooms[msg.Room], msg)
	if len(msgs) > maxRetainedPerRoom {
		msgs = msgs[len(msgs)-maxRetainedPerRoom:]
	}
	s.rooms[msg.Room] = msgs
	return nil
}

func (s *MemoryStore) Recent(ctx context.Context, room string, limit int) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.rooms[room]
	if limit <= 0 || len(msgs) == 0 {
		return []Message{}, nil
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	result := make([]Message, len(msgs))
	copy(result, msgs)
	return result, nil
}
