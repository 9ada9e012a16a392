package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/drishti/internal/engine"
	"github.com/ayusman/drishti/internal/ui"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// PointerHub pushes real-time pointer state to connected clients and
// ingests layout updates from them. Clients send their element layout
// whenever their UI changes; the hub mirrors it into the shared tree the
// engine hit-tests against.
type PointerHub struct {
	tree    *ui.Tree
	clients map[*websocket.Conn]*sync.Mutex
	mu      sync.RWMutex
}

// NewPointerHub creates a new PointerHub backed by the given layout tree.
func NewPointerHub(tree *ui.Tree) *PointerHub {
	return &PointerHub{
		tree:    tree,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// inboundMessage is what clients send over the socket.
type inboundMessage struct {
	Type     string       `json:"type"`
	Elements []ui.Element `json:"elements"`
	Element  *ui.Element  `json:"element"`
	ID       string       `json:"id"`
}

// outboundMessage wraps a pointer update for clients.
type outboundMessage struct {
	Type      string            `json:"type"`
	Result    engine.TickResult `json:"result"`
	Timestamp int64             `json:"timestamp"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *PointerHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.handleMessage(data)
	}
}

// handleMessage applies a client message to the layout tree.
func (h *PointerHub) handleMessage(data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("pointer hub: dropping malformed message: %v", err)
		return
	}

	switch msg.Type {
	case "layout":
		h.tree.Replace(msg.Elements)
	case "upsert":
		if msg.Element != nil {
			h.tree.Upsert(*msg.Element)
		}
	case "remove":
		h.tree.Remove(msg.ID)
	default:
		log.Printf("pointer hub: unknown message type %q", msg.Type)
	}
}

// Broadcast sends a pointer update to every connected client. Slow or dead
// clients lose the frame rather than stalling the pipeline.
func (h *PointerHub) Broadcast(result engine.TickResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(outboundMessage{
		Type:      "pointer",
		Result:    result,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	for conn, wmu := range h.clients {
		wmu.Lock()
		conn.WriteMessage(websocket.TextMessage, msg)
		wmu.Unlock()
	}
}

// ClientCount returns the number of connected clients.
func (h *PointerHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
