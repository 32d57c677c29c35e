package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsEvent is the outgoing WebSocket message format. Type is one of
// "phase", "progress", "graph", or "error".
type wsEvent struct {
	Type  string `json:"type"`
	Phase string `json:"phase,omitempty"`
	Done  int    `json:"done,omitempty"`
	Total int    `json:"total,omitempty"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
	Graph any    `json:"graph,omitempty"`
}

// wsConn serializes writes to a single connection. Enrichment progress
// callbacks fire from multiple worker goroutines.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(ev wsEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(ev); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

// handleGraphWS streams graph build progress over a WebSocket and sends
// the finished graph as the final event.
func (s *Server) handleGraphWS(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	ref := r.URL.Query().Get("ref")

	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer raw.Close()
	conn := &wsConn{conn: raw}

	conn.send(wsEvent{Type: "phase", Phase: "fetching"})

	var started sync.Once
	onProgress := func(done, total int, path string) {
		started.Do(func() {
			conn.send(wsEvent{Type: "phase", Phase: "resolving"})
		})
		conn.send(wsEvent{Type: "progress", Done: done, Total: total, Path: path})
	}

	resp, err := s.buildGraph(r.Context(), owner, repo, ref, onProgress)
	if err != nil {
		conn.send(wsEvent{Type: "error", Error: err.Error()})
		return
	}

	conn.send(wsEvent{Type: "graph", Graph: resp})
}
