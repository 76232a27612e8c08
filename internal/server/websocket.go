package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsClient is one connected player. The identity lives for the lifetime of
// the connection, like a socket id.
type wsClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.TextMessage, data)
}

type wsHub struct {
	mu      sync.Mutex
	clients map[string]*wsClient            // player id -> client
	rooms   map[string]map[string]*wsClient // room code -> player id -> client
}

func newWSHub() *wsHub {
	return &wsHub{
		clients: make(map[string]*wsClient),
		rooms:   make(map[string]map[string]*wsClient),
	}
}

func (h *wsHub) Register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *wsHub) Unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
	_ = c.conn.Close()
}

func (h *wsHub) Join(code string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[code]
	if group == nil {
		group = make(map[string]*wsClient)
		h.rooms[code] = group
	}
	group[c.id] = c
}

func (h *wsHub) Leave(code, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[code]
	if group == nil {
		return
	}
	delete(group, playerID)
	if len(group) == 0 {
		delete(h.rooms, code)
	}
}

// MoveRoom migrates a whole channel to a new code after regeneration.
func (h *wsHub) MoveRoom(oldCode, newCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.rooms[oldCode]
	if !ok {
		return
	}
	delete(h.rooms, oldCode)
	h.rooms[newCode] = group
}

func (h *wsHub) Broadcast(code string, payload any) {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.rooms[code]))
	for _, c := range h.rooms[code] {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		c.send(payload)
	}
}

func (h *wsHub) SendTo(playerID string, payload any) {
	h.mu.Lock()
	c, ok := h.clients[playerID]
	h.mu.Unlock()
	if ok {
		c.send(payload)
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// Leave headroom above the avatar cap for the JSON envelope.
	conn.SetReadLimit(maxAvatarBytes + 4096)

	client := &wsClient{id: uuid.NewString(), conn: conn}
	s.hub.Register(client)
	log.Printf("ws connected player_id=%s remote=%s", client.id, r.RemoteAddr)
	client.send(serverMessage{Type: "connected", PlayerID: client.id})

	defer func() {
		s.disconnect(client)
	}()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected player_id=%s error=%v", client.id, err)
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.send(serverMessage{Type: "room:error", Error: "invalid message"})
			continue
		}
		s.handleClientMessage(client, msg)
	}
}

// disconnect runs the same cleanup as an explicit leave, then drops the
// connection from the hub.
func (s *Server) disconnect(client *wsClient) {
	s.leaveCurrentRoom(client)
	s.hub.Unregister(client)
}
