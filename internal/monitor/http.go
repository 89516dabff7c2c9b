package monitor

import (
	"encoding/json"
	"log"
	"net/http"
)

// Server is the HTTP server backing the training dashboard.
type Server struct {
	mux  *http.ServeMux
	hub  *Hub
	addr string
}

// NewServer creates a Server that serves /ws and /api/status from hub.
func NewServer(addr string, hub *Hub) *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		hub:  hub,
		addr: addr,
	}
	s.mux.HandleFunc("/ws", s.hub.HandleWebSocket)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	return s
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.hub.LastEvent())
}

// Start runs the HTTP server, blocking until it exits.
func (s *Server) Start() error {
	log.Printf("monitor: listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
