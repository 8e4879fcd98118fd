package coordinator

import "strings"

// roomDirectory maps room names to their member connection IDs. Rooms are
// created on first join and removed when the last member leaves. Access is
// serialized by the coordinator.
type roomDirectory struct {
	rooms map[string]map[string]struct{}
}

func newRoomDirectory() *roomDirectory {
	return &roomDirectory{rooms: make(map[string]map[string]struct{})}
}

func (d *roomDirectory) add(room, connID string) {
	members, exists := d.rooms[room]
	if !exists {
		members = make(map[string]struct{})
		d.rooms[room] = members
	}
	members[connID] = struct{}{}
}

// remove deletes the connection from the room and drops the room entry once
// empty. It reports whether the connection was a member.
func (d *roomDirectory) remove(room, connID string) bool {
	members, exists := d.rooms[room]
	if !exists {
		return false
	}
	if _, member := members[connID]; !member {
		return false
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(d.rooms, room)
	}
	return true
}

func (d *roomDirectory) count(room string) int {
	return len(d.rooms[room])
}

func (d *roomDirectory) members(room string) []string {
	members := d.rooms[room]
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

func (d *roomDirectory) names() []string {
	names := make([]string, 0, len(d.rooms))
	for name := range d.rooms {
		names = append(names, name)
	}
	return names
}

// normalizeRoomName coerces a raw room name into a usable one: whitespace is
// trimmed, an empty result falls back to the default room, and overlong names
// are truncated. Malformed names are normalized rather than rejected.
func normalizeRoomName(raw, fallback string, maxLen int) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return fallback
	}
	if runes := []rune(name); len(runes) > maxLen {
		name = string(runes[:maxLen])
	}
	return name
}
