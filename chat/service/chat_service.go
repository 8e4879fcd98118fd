package service

import (
	"context"
	"errors"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomInfo describes one live room.
type RoomInfo struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// Stats mirrors the coordinator counters for the API surface.
type Stats struct {
	Connections int    `json:"connections"`
	Rooms       int    `json:"rooms"`
	Waiting     int    `json:"waiting"`
	ActivePairs int    `json:"active_pairs"`
	Uptime      string `json:"uptime"`
}

// ChatService defines the queries served over REST and MCP.
type ChatService interface {
	ListRooms(ctx context.Context) ([]*RoomInfo, error)
	RoomInfo(ctx context.Context, name string) (*RoomInfo, error)
	RecentMessages(ctx context.Context, room string, limit int) ([]history.Message, error)
	Stats(ctx context.Context) (*Stats, error)
}
