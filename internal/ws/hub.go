package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks connected clients by profile so new-message notifications can be
// pushed to the recipient if they are online. Delivery is best effort; the
// message row in the store is the source of truth either way.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Map to quickly find clients by ProfileID
	profileClients map[uint][]*Client

	// Mutex to protect the profileClients map
	mutex sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		clients:        make(map[*Client]bool),
		profileClients: make(map[uint][]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addProfileClient(client)
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeProfileClient(client)
			}
		}
	}
}

// Notification is the payload pushed to a recipient's open connections.
type Notification struct {
	Type      string `json:"type"` // 'new_message'
	MessageID uint   `json:"message_id"`
	SenderID  uint   `json:"sender_id"`
	ProductID *uint  `json:"product_id,omitempty"`
	Text      string `json:"text"`
}

// NotifyProfile pushes a notification to every open connection of a profile.
// Slow connections are dropped rather than blocking the caller.
func (h *Hub) NotifyProfile(profileID uint, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("notification marshal failed: %v", err)
		return
	}

	h.mutex.Lock()
	conns := make([]*Client, len(h.profileClients[profileID]))
	copy(conns, h.profileClients[profileID])
	h.mutex.Unlock()

	for _, client := range conns {
		select {
		case client.Send <- payload:
		default:
			h.Unregister <- client
		}
	}
}

func (h *Hub) addProfileClient(client *Client) {
	h.mutex.Lock()
	h.profileClients[client.ProfileID] = append(h.profileClients[client.ProfileID], client)
	count := len(h.profileClients[client.ProfileID])
	h.mutex.Unlock()

	log.Printf("Profile %d connected. Total connections for profile: %d", client.ProfileID, count)
}

func (h *Hub) removeProfileClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns := h.profileClients[client.ProfileID]
	for i, conn := range conns {
		if conn == client {
			h.profileClients[client.ProfileID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.profileClients[client.ProfileID]) == 0 {
		delete(h.profileClients, client.ProfileID)
		log.Printf("Profile %d disconnected", client.ProfileID)
	}
}
