package coordinator

import (
	"time"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/history"
)

// Outbound event names. These are the only events the server emits.
const (
	EventSystemMessage   = "systemMessage"
	EventChatMessage     = "chatMessage"
	EventTyping          = "typing"
	EventPresence        = "presence"
	EventHistory         = "history"
	EventWaitingStranger = "waitingStranger"
	EventStrangerFound   = "strangerFound"
	EventStrangerMessage = "strangerMessage"
	EventStrangerLeft    = "strangerLeft"
	EventYouDisconnected = "youDisconnected"
	EventUnauthorized    = "unauthorized"
)

// Inbound event names accepted from clients. The transport decodes frames
// into these before reaching the coordinator.
const (
	InboundJoin            = "join"
	InboundChatMessage     = "chatMessage"
	InboundTyping          = "typing"
	InboundFindStranger    = "findStranger"
	InboundStrangerMessage = "strangerMessage"
	InboundLeaveStranger   = "leaveStranger"
)

// Event is one typed outbound notification.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data,omitempty"`
}

// TypingPayload is broadcast to room members except the sender.
type TypingPayload struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

// PresencePayload carries the live membership count of a room.
type PresencePayload struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

// StrangerMessage is delivered to both sides of a pairing link. It carries a
// server-assigned identifier and timestamp and is never persisted.
type StrangerMessage struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"ts"`
}

// Inbound request payloads, decoded at the transport boundary.

type JoinRequest struct {
	Room string `json:"room"`
}

type MessageRequest struct {
	Text string `json:"text"`
}

type TypingRequest struct {
	IsTyping bool `json:"isTyping"`
}

func systemMessage(text string) Event {
	return Event{Name: EventSystemMessage, Data: text}
}

func chatMessageEvent(msg history.Message) Event {
	return Event{Name: EventChatMessage, Data: msg}
}

func typingEvent(username string, isTyping bool) Event {
	return Event{Name: EventTyping, Data: TypingPayload{Username: username, IsTyping: isTyping}}
}

func presenceEvent(room string, count int) Event {
	return Event{Name: EventPresence, Data: PresencePayload{Room: room, Count: count}}
}

func historyEvent(backlog []history.Message) Event {
	return Event{Name: EventHistory, Data: backlog}
}

func strangerMessageEvent(msg StrangerMessage) Event {
	return Event{Name: EventStrangerMessage, Data: msg}
}

func waitingStrangerEvent() Event { return Event{Name: EventWaitingStranger} }
func strangerFoundEvent() Event   { return Event{Name: EventStrangerFound} }
func strangerLeftEvent() Event    { return Event{Name: EventStrangerLeft} }
func youDisconnectedEvent() Event { return Event{Name: EventYouDisconnected} }

// Unauthorized is sent by the transport to a connection that presented no
// valid identity, right before the connection is force-closed.
func Unauthorized() Event { return Event{Name: EventUnauthorized} }
