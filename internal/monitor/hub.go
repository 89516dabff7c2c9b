// Package monitor serves a WebSocket/HTTP dashboard of training
// progress: a small Hub broadcasts per-utterance and per-resample
// events to any connected client, and a thin HTTP server exposes them
// alongside a plain status endpoint. It is the only concurrent piece
// of this repository — internal/hmm and internal/wfst stay
// single-threaded, per spec.md §5.
package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local dashboard; no cross-origin concern
	},
}

// Phase identifies what the driver was doing when an event was raised.
type Phase string

const (
	PhaseUtterance Phase = "utterance"
	PhaseResample  Phase = "resample"
)

// Event is one training-iteration update pushed to the dashboard.
type Event struct {
	Iteration    int    `json:"iteration"`
	Utterance    string `json:"utterance,omitempty"`
	AlignmentLen int    `json:"alignmentLen,omitempty"`
	Phase        Phase  `json:"phase"`
}

// Hub manages WebSocket connections and fans Event values out to them.
// It owns its own mutex and never touches hmm.DiscreteHMM fields
// directly; the caller copies out plain data before calling Broadcast.
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex

	lastMu sync.RWMutex
	last   Event
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// AddClient registers a new WebSocket connection.
func (h *Hub) AddClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Printf("monitor: client connected (%d total)", len(h.clients))
}

// RemoveClient removes a WebSocket connection and closes it.
func (h *Hub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	log.Printf("monitor: client disconnected (%d remaining)", len(h.clients))
}

// Broadcast sends ev as JSON to every connected client and records it
// as the last known status.
func (h *Hub) Broadcast(ev Event) {
	h.lastMu.Lock()
	h.last = ev
	h.lastMu.Unlock()

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("monitor: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("monitor: write error: %v", err)
			go h.RemoveClient(conn)
		}
	}
}

// LastEvent returns the most recently broadcast event.
func (h *Hub) LastEvent() Event {
	h.lastMu.RLock()
	defer h.lastMu.RUnlock()
	return h.last
}

// HandleWebSocket upgrades r to a WebSocket and registers it with the hub.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor: upgrade error: %v", err)
		return
	}
	h.AddClient(conn)

	go func() {
		defer h.RemoveClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
