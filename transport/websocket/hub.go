package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/coordinator"
	"github.com/nikhilkumar118/Real-Time-Chat-Application/chat/identity"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Hub maintains the set of live WebSocket clients keyed by connection ID and
// delivers coordinator events to them. It implements coordinator.Transport.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	coord *coordinator.Coordinator
	ident *identity.Service
}

// NewHub creates a hub with no clients. Bind must be called before ServeWS.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Bind wires the coordinator and the identity verifier. The hub and the
// coordinator reference each other, so the hub is constructed first and
// bound after the coordinator exists.
func (h *Hub) Bind(coord *coordinator.Coordinator, ident *identity.Service) {
	h.coord = coord
	h.ident = ident
}

// ServeWS upgrades an HTTP request to a WebSocket connection. The client must
// present a valid token via the "token" query parameter; otherwise it receives
// a single unauthorized event and the connection is closed before any state
// is registered.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	username, err := h.ident.Verify(r.URL.Query().Get("token"))
	if err != nil {
		log.Printf("WebSocket auth rejected: %v", err)
		h.reject(conn)
		return
	}

	connID, err := h.coord.Register(username)
	if err != nil {
		log.Printf("WebSocket registration rejected for %q: %v", username, err)
		h.reject(conn)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		connID: connID,
	}

	h.mu.Lock()
	h.clients[connID] = client
	h.mu.Unlock()

	log.Printf("Client connected: %s (conn %s)", username, connID)

	go client.writePump()
	go client.readPump()
}

// reject tells an unauthenticated peer why it is being dropped, then closes.
func (h *Hub) reject(conn *websocket.Conn) {
	data, err := json.Marshal(coordinator.Unauthorized())
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.TextMessage, data)
	}
	conn.Close()
}

// Send delivers one event to a connection. Unknown connections and clients
// whose send buffer is full are dropped silently; the coordinator learns
// about them through Alive and Disconnect.
func (h *Hub) Send(connID string, ev coordinator.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal event %q: %v", ev.Name, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case client.send <- data:
	default:
		// Slow consumer. Drop it; the read pump will run Disconnect.
		h.dropLocked(connID)
	}
}

// Alive reports whether a connection is still attached to the hub.
func (h *Hub) Alive(connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connID]
	return ok
}

// Kick force-closes a connection's outbound channel. It is a hub-level
// operation; the coordinator only ever needs Send and Alive.
func (h *Hub) Kick(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(connID)
}

// ClientCount returns the number of attached connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// drop detaches a client from the hub.
func (h *Hub) drop(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(connID)
}

func (h *Hub) dropLocked(connID string) {
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	close(client.send)
}
