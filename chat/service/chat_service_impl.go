package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/coordinator"
	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
)

// maxRecentMessages bounds API history queries regardless of the requested
// limit.
const maxRecentMessages = 100

// chatServiceImpl implements ChatService over the coordinator's snapshot
// accessors and the history store.
type chatServiceImpl struct {
	coord *coordinator.Coordinator
	store history.Store
}

// NewChatService creates the read-side service.
func NewChatService(coord *coordinator.Coordinator, store history.Store) ChatService {
	return &chatServiceImpl{
		coord: coord,
		store: store,
	}
}

// ListRooms returns all live rooms sorted by name.
func (s *chatServiceImpl) ListRooms(ctx context.Context) ([]*RoomInfo, error) {
	names := s.coord.RoomNames()
	sort.Strings(names)

	rooms := make([]*RoomInfo, 0, len(names))
	for _, name := range names {
		rooms = append(rooms, &RoomInfo{
			Name:    name,
			Members: s.coord.RoomCount(name),
		})
	}
	return rooms, nil
}

// RoomInfo returns the presence count of one live room.
func (s *chatServiceImpl) RoomInfo(ctx context.Context, name string) (*RoomInfo, error) {
	count := s.coord.RoomCount(name)
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	return &RoomInfo{Name: name, Members: count}, nil
}

// RecentMessages returns up to limit messages for a room, oldest first.
func (s *chatServiceImpl) RecentMessages(ctx context.Context, room string, limit int) ([]history.Message, error) {
	if limit <= 0 || limit > maxRecentMessages {
		limit = maxRecentMessages
	}
	msgs, err := s.store.Recent(ctx, room, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for room %s: %w", room, err)
	}
	if msgs == nil {
		msgs = []history.Message{}
	}
	return msgs, nil
}

// Stats returns coordinator-wide counters.
func (s *chatServiceImpl) Stats(ctx context.Context) (*Stats, error) {
	snapshot := s.coord.GetStats()
	return &Stats{
		Connections: snapshot.Connections,
		Rooms:       snapshot.Rooms,
		Waiting:     snapshot.Waiting,
		ActivePairs: snapshot.ActivePairs,
		Uptime:      snapshot.Uptime,
	}, nil
}
