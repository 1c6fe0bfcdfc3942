package websockets

import "encoding/json"

// Hub fans broadcast messages out to every connected client. Kitchen
// displays and dashboards subscribe here instead of polling.
type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// BroadcastMessage sends a raw message to all connected clients
func (h *Hub) BroadcastMessage(message []byte) {
	h.broadcast <- message
}

// BroadcastEvent sends a typed event to all connected clients
func (h *Hub) BroadcastEvent(eventType MessageType, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	message, err := json.Marshal(Message{Type: eventType, Data: payload})
	if err != nil {
		return
	}
	h.BroadcastMessage(message)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
