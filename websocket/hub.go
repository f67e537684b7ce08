package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected WebSocket client
type Client struct {
	Hub    *Hub
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub manages all WebSocket connections, keyed by user ID
type Hub struct {
	Clients    map[uint]*Client
	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex
}

// Message represents a notification pushed to a connected user
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if old, ok := h.Clients[client.UserID]; ok {
				close(old.Send)
			}
			h.Clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.Clients[client.UserID]; ok && current == client {
				delete(h.Clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%d", client.UserID)
		}
	}
}

// SendToUser pushes a message to one connected user. Best effort: offline
// users and full buffers drop the message.
func (h *Hub) SendToUser(userID uint, message *Message) {
	h.mu.RLock()
	client, exists := h.Clients[userID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling notification: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ Notification buffer full for user %d, dropping message", userID)
	}
}
