package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/coordinator"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound buffer per client. A room join can flush a history backlog
	// plus presence in one burst, so this stays comfortably above that.
	sendBufferSize = 256
)

// inboundFrame is the wire shape of every client-to-server message.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one WebSocket connection attached to the hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	connID string
}

// readPump pumps messages from the WebSocket connection to the coordinator.
func (c *Client) readPump() {
	defer func() {
		c.hub.drop(c.connID)
		c.hub.coord.Disconnect(c.connID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on conn %s: %v", c.connID, err)
			}
			break
		}
		c.dispatch(data)
	}
}

// dispatch decodes one inbound frame and routes it to the coordinator.
// Unknown events and malformed payloads are logged and ignored; a bad frame
// never takes the connection down.
func (c *Client) dispatch(data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		log.Printf("Malformed frame from conn %s: %v", c.connID, err)
		return
	}

	ctx := context.Background()

	switch frame.Event {
	case coordinator.InboundJoin:
		var req coordinator.JoinRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil {
			log.Printf("Malformed join payload from conn %s: %v", c.connID, err)
			return
		}
		c.hub.coord.Join(ctx, c.connID, req.Room)

	case coordinator.InboundChatMessage:
		var req coordinator.MessageRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil {
			log.Printf("Malformed message payload from conn %s: %v", c.connID, err)
			return
		}
		c.hub.coord.SendRoomMessage(ctx, c.connID, req.Text)

	case coordinator.InboundTyping:
		var req coordinator.TypingRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil {
			log.Printf("Malformed typing payload from conn %s: %v", c.connID, err)
			return
		}
		c.hub.coord.Typing(c.connID, req.IsTyping)

	case coordinator.InboundFindStranger:
		c.hub.coord.FindPartner(c.connID)

	case coordinator.InboundStrangerMessage:
		var req coordinator.MessageRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil {
			log.Printf("Malformed stranger payload from conn %s: %v", c.connID, err)
			return
		}
		c.hub.coord.SendPartnerMessage(c.connID, req.Text)

	case coordinator.InboundLeaveStranger:
		c.hub.coord.LeavePartner(c.connID)

	default:
		log.Printf("Unknown event %q from conn %s", frame.Event, c.connID)
	}
}

// writePump pumps events from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub dropped this client.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
