package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
)

var (
	// ErrAnonymous is returned when a connection without a verified identity
	// tries to register. The coordinator never stores anonymous connections.
	ErrAnonymous = errors.New("connection has no verified identity")
)

// Limits bounds the values the coordinator normalizes inbound data against.
type Limits struct {
	DefaultRoom       string
	BacklogLimit      int
	MaxMessageLength  int
	MaxRoomNameLength int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		DefaultRoom:       "general",
		BacklogLimit:      30,
		MaxMessageLength:  2000,
		MaxRoomNameLength: 64,
	}
}

// Stats is a point-in-time snapshot of coordinator state.
type Stats struct {
	Connections int    `json:"connections"`
	Rooms       int    `json:"rooms"`
	Waiting     int    `json:"waiting"`
	ActivePairs int    `json:"active_pairs"`
	Uptime      string `json:"uptime"`
}

// Coordinator owns all shared connection state: the connection registry, the
// room directory, and the pairing pool. Every mutation is serialized behind
// one mutex; room-join sequences and pairing sequences are multi-step and
// must not interleave with another connection's mutation of the same room or
// pool entry.
//
// External I/O (history reads and writes) happens outside the critical
// section: operations mutate under the lock, collect a delivery plan, then
// release the lock before any transport send or store call.
type Coordinator struct {
	mu        sync.Mutex
	registry  *registry
	rooms     *roomDirectory
	pool      *pairingPool
	cast      *broadcaster
	transport Transport
	store     history.Store
	limits    Limits
	startTime time.Time
}

// New creates a coordinator on top of a transport and a history store.
func New(transport Transport, store history.Store, limits Limits) *Coordinator {
	return &Coordinator{
		registry:  newRegistry(),
		rooms:     newRoomDirectory(),
		pool:      newPairingPool(),
		cast:      &broadcaster{transport: transport},
		transport: transport,
		store:     store,
		limits:    limits,
		startTime: time.Now(),
	}
}

// Register stores a new authenticated connection and returns its ID. The
// transport must have verified the identity first; an empty username is
// rejected so anonymous connections never enter the registry.
func (c *Coordinator) Register(username string) (string, error) {
	if username == "" {
		return "", ErrAnonymous
	}

	c.mu.Lock()
	conn := c.registry.register(username)
	c.mu.Unlock()

	return conn.id, nil
}

// Join moves a connection into a room. The room name is normalized first.
// Joining the current room is a no-op; joining a different room leaves the
// old one (with notifications) before entering the new one. The joiner
// receives the room backlog, a personalized welcome, and the presence count;
// other members receive a joined notice and the updated count.
func (c *Coordinator) Join(ctx context.Context, connID, rawRoom string) {
	room := normalizeRoomName(rawRoom, c.limits.DefaultRoom, c.limits.MaxRoomNameLength)

	c.mu.Lock()
	conn, ok := c.registry.get(connID)
	if !ok || conn.room == room {
		c.mu.Unlock()
		return
	}

	var leavePlan []outbound
	if conn.room != "" {
		c.leaveRoomLocked(conn, &leavePlan)
	}

	c.rooms.add(room, connID)
	conn.room = room

	username := conn.username
	members := c.rooms.members(room)
	count := c.rooms.count(room)
	c.mu.Unlock()

	c.cast.flush(leavePlan)

	backlog, err := c.store.Recent(ctx, room, c.limits.BacklogLimit)
	if err != nil {
		log.Printf("Failed to load backlog for room %s: %v", room, err)
		backlog = []history.Message{}
	}
	if backlog == nil {
		backlog = []history.Message{}
	}

	var plan []outbound
	c.cast.toConn(&plan, connID, historyEvent(backlog))
	c.cast.toConn(&plan, connID, systemMessage(fmt.Sprintf("Welcome to %s, %s!", room, username)))
	c.cast.toMembers(&plan, members, connID, systemMessage(fmt.Sprintf("%s has joined the room", username)))
	c.cast.toMembers(&plan, members, "", presenceEvent(room, count))
	c.cast.flush(plan)
}

// LeaveRoom removes a connection from the named room. Leaving a room the
// connection is not in is a no-op.
func (c *Coordinator) LeaveRoom(connID, rawRoom string) {
	room := normalizeRoomName(rawRoom, c.limits.DefaultRoom, c.limits.MaxRoomNameLength)

	c.mu.Lock()
	conn, ok := c.registry.get(connID)
	if !ok || conn.room != room {
		c.mu.Unlock()
		return
	}

	var plan []outbound
	c.leaveRoomLocked(conn, &plan)
	c.mu.Unlock()

	c.cast.flush(plan)
}

// leaveRoomLocked detaches the connection from its current room and plans
// the left notice and presence update for the remaining members. Caller
// holds the coordinator lock.
func (c *Coordinator) leaveRoomLocked(conn *connState, plan *[]outbound) {
	room := conn.room
	if room == "" {
		return
	}
	if !c.rooms.remove(room, conn.id) {
		conn.room = ""
		return
	}
	conn.room = ""

	remaining := c.rooms.members(room)
	if len(remaining) == 0 {
		return
	}
	c.cast.toMembers(plan, remaining, "", systemMessage(fmt.Sprintf("%s has left the room", conn.username)))
	c.cast.toMembers(plan, remaining, "", presenceEvent(room, c.rooms.count(room)))
}

// SendRoomMessage persists a room message and broadcasts it to every member
// of the sender's room, including the sender, so the sender sees the
// server-assigned ID and timestamp. No-op when the sender has no room.
func (c *Coordinator) SendRoomMessage(ctx context.Context, connID, text string) {
	c.mu.Lock()
	conn, ok := c.registry.get(connID)
	if !ok || conn.room == "" {
		c.mu.Unlock()
		return
	}

	msg := history.Message{
		ID:        ulid.Make().String(),
		Room:      conn.room,
		Username:  conn.username,
		Text:      capText(text, c.limits.MaxMessageLength),
		CreatedAt: time.Now().UTC(),
	}
	members := c.rooms.members(conn.room)
	c.mu.Unlock()

	if err := c.store.Append(ctx, msg); err != nil {
		// Availability over strictness: the message is still delivered.
		log.Printf("Failed to persist message %s in room %s: %v", msg.ID, msg.Room, err)
	}

	var plan []outbound
	c.cast.toMembers(&plan, members, "", chatMessageEvent(msg))
	c.cast.flush(plan)
}

// Typing broadcasts a transient typing indicator to the sender's room,
// excluding the sender. Nothing is persisted; clients auto-clear stale
// indicators themselves.
func (c *Coordinator) Typing(connID string, isTyping bool) {
	c.mu.Lock()
	conn, ok := c.registry.get(connID)
	if !ok || conn.room == "" {
		c.mu.Unlock()
		return
	}
	username := conn.username
	members := c.rooms.members(conn.room)
	c.mu.Unlock()

	var plan []outbound
	c.cast.toMembers(&plan, members, connID, typingEvent(username, isTyping))
	c.cast.flush(plan)
}

// FindPartner matches the connection with a waiting stranger, or enqueues it
// when the pool is empty. An existing pairing link is torn down first: a
// connection never holds two links. A stale candidate popped from the pool
// is discarded and the requester re-enqueued rather than retrying.
func (c *Coordinator) FindPartner(connID string) {
	c.mu.Lock()
	if !c.registry.has(connID) {
		c.mu.Unlock()
		return
	}

	var plan []outbound
	c.teardownPairingLocked(connID, &plan)

	if c.pool.isWaiting(connID) {
		c.cast.toConn(&plan, connID, waitingStrangerEvent())
		c.mu.Unlock()
		c.cast.flush(plan)
		return
	}

	if candidate, ok := c.pool.dequeue(); ok {
		if c.registry.has(candidate) && c.transport.Alive(candidate) {
			c.pool.link(connID, candidate)
			c.cast.toPair(&plan, connID, candidate, strangerFoundEvent())
		} else {
			// Stale pool entry: treat the candidate as already left and put
			// the requester back in line. One shot only, no recursion.
			c.pool.enqueue(connID)
			c.cast.toConn(&plan, connID, waitingStrangerEvent())
		}
	} else {
		c.pool.enqueue(connID)
		c.cast.toConn(&plan, connID, waitingStrangerEvent())
	}
	c.mu.Unlock()

	c.cast.flush(plan)
}

// SendPartnerMessage delivers an anonymous message to both sides of the
// sender's pairing link. No-op without a link. If the partner turns out to
// be gone before teardown ran, the link is cleared and the sender notified
// instead; the message is dropped.
func (c *Coordinator) SendPartnerMessage(connID, text string) {
	c.mu.Lock()
	conn, ok := c.registry.get(connID)
	if !ok {
		c.mu.Unlock()
		return
	}
	partner, linked := c.pool.partner(connID)
	if !linked {
		c.mu.Unlock()
		return
	}

	var plan []outbound
	if !c.registry.has(partner) || !c.transport.Alive(partner) {
		// Normal teardown should make this unreachable; guard against the
		// ordering race anyway.
		c.pool.unlink(connID)
		c.cast.toConn(&plan, connID, strangerLeftEvent())
		c.mu.Unlock()
		c.cast.flush(plan)
		return
	}

	msg := StrangerMessage{
		ID:        ulid.Make().String(),
		Username:  conn.username,
		Text:      capText(text, c.limits.MaxMessageLength),
		CreatedAt: time.Now().UTC(),
	}
	c.cast.toPair(&plan, connID, partner, strangerMessageEvent(msg))
	c.mu.Unlock()

	c.cast.flush(plan)
}

// LeavePartner cancels waiting or tears down the active pairing link.
func (c *Coordinator) LeavePartner(connID string) {
	c.mu.Lock()
	var plan []outbound
	if c.pool.removeWaiting(connID) {
		c.cast.toConn(&plan, connID, youDisconnectedEvent())
	} else {
		c.teardownPairingLocked(connID, &plan)
	}
	c.mu.Unlock()

	c.cast.flush(plan)
}

// teardownPairingLocked destroys the connection's pairing link, if any:
// the initiator is told it disconnected, the partner (when still registered)
// is told the stranger left, and both link states are cleared. Calling it on
// an unlinked connection is a no-op, which makes every teardown path
// idempotent. Caller holds the coordinator lock.
func (c *Coordinator) teardownPairingLocked(connID string, plan *[]outbound) {
	partner, ok := c.pool.partner(connID)
	if !ok {
		return
	}
	c.pool.unlink(connID)

	c.cast.toConn(plan, connID, youDisconnectedEvent())
	if c.registry.has(partner) {
		c.cast.toConn(plan, partner, strangerLeftEvent())
	}
}

// Disconnect runs the full transport-close cleanup exactly once: implicit
// room leave, silent waiting-pool removal, pairing teardown, and registry
// removal. A second call for the same connection finds no registry entry
// and is a no-op, so a disconnect racing an explicit leave is safe.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	conn, ok := c.registry.get(connID)
	if !ok {
		c.mu.Unlock()
		return
	}

	var plan []outbound
	c.leaveRoomLocked(conn, &plan)
	c.pool.removeWaiting(connID)
	c.teardownPairingLocked(connID, &plan)
	c.registry.unregister(connID)
	c.mu.Unlock()

	c.cast.flush(plan)
}

// capText truncates oversized text instead of rejecting it.
func capText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return text
}

// Snapshot accessors used by the read-side service and the tests.

// Username returns the identity bound to a connection.
func (c *Coordinator) Username(connID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.registry.get(connID)
	if !ok {
		return "", false
	}
	return conn.username, true
}

// CurrentRoom returns the connection's room, or false when it has none.
func (c *Coordinator) CurrentRoom(connID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.registry.get(connID)
	if !ok || conn.room == "" {
		return "", false
	}
	return conn.room, true
}

// Partner returns the connection's pairing partner, if linked.
func (c *Coordinator) Partner(connID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pool.partner(connID)
}

// IsWaiting reports whether the connection sits in the waiting pool.
func (c *Coordinator) IsWaiting(connID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pool.isWaiting(connID)
}

// RoomNames returns the names of all live rooms.
func (c *Coordinator) RoomNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.names()
}

// RoomCount returns the presence count of a room, zero when it does not
// exist.
func (c *Coordinator) RoomCount(room string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.count(room)
}

// GetStats returns a snapshot of coordinator-wide counters.
func (c *Coordinator) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Connections: c.registry.count(),
		Rooms:       len(c.rooms.rooms),
		Waiting:     c.pool.waitingCount(),
		ActivePairs: c.pool.linkCount(),
		Uptime:      time.Since(c.startTime).String(),
	}
}
