package ws

import (
	"encoding/json"
	"log"
	"sync"

	"examforge/internal/model"
)

// Message is the WebSocket envelope format. Type carries the
// notification code; Payload is the full Notification event.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans Notification events out to each draft session's subscribers.
// Notifications are fire-and-forget: a slow or absent subscriber never
// blocks the authoring flow.
type Hub struct {
	// draftID -> connections
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one WebSocket subscriber for a draft session
type Connection struct {
	DraftID string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message queued for fan-out
type BroadcastMessage struct {
	DraftID string
	Message *Message
}

// NewHub creates a new notification hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.DraftID] == nil {
				h.conns[conn.DraftID] = make(map[*Connection]bool)
			}
			h.conns[conn.DraftID][conn] = true
			h.mu.Unlock()
			log.Printf("Subscriber connected to draft %s", conn.DraftID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if subs, ok := h.conns[conn.DraftID]; ok {
				if subs[conn] {
					delete(subs, conn)
					close(conn.Send)
					if len(subs) == 0 {
						delete(h.conns, conn.DraftID)
					}
					log.Printf("Subscriber disconnected from draft %s", conn.DraftID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.DraftID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifyDraft queues a notification for a draft session's subscribers
// (implements service.Broadcaster)
func (h *Hub) NotifyDraft(draftID string, n model.Notification) {
	payload, _ := json.Marshal(n)
	h.broadcast <- &BroadcastMessage{
		DraftID: draftID,
		Message: &Message{
			Type:    n.Code,
			Payload: payload,
		},
	}
}
