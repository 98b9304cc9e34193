// Package ws streams automaton generations to websocket viewers.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Frame is one generation as sent to viewers. States are base64 in JSON.
type Frame struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Tick     uint64 `json:"tick"`
	Topology string `json:"topology"`
	Dims     [3]int `json:"dims,omitempty"`
	Active   int    `json:"active"`
	States   []byte `json:"states"`
}

const frameType = "FRAME"

type client struct {
	id  uint64
	out chan []byte
}

// Hub fans frames out to connected viewers. Slow viewers drop frames rather
// than stall the simulation.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uint64]*client
	closed  bool
	nextID  atomic.Uint64
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[uint64]*client),
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish sends f to every viewer.
func (h *Hub) Publish(f Frame) {
	f.Type = frameType
	b, err := json.Marshal(f)
	if err != nil {
		h.log.Error("encode frame", "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.out <- b:
		default:
			h.log.Debug("viewer behind, frame dropped", "client", c.id, "tick", f.Tick)
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.out)
		delete(h.clients, id)
	}
}

func (h *Hub) register() *client {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	c := &client{id: h.nextID.Add(1), out: make(chan []byte, 16)}
	h.clients[c.id] = c
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.out)
	}
}

// Handler upgrades the request and streams frames until either side closes.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c := h.register()
		if c == nil {
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(time.Second))
			return
		}
		h.log.Info("viewer connected", "client", c.id, "remote", r.RemoteAddr)
		defer h.log.Info("viewer disconnected", "client", c.id)

		// Reader: viewers send nothing meaningful, but reading surfaces closes.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				h.unregister(c)
				return
			case b, ok := <-c.out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"), time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					h.unregister(c)
					return
				}
			}
		}
	}
}
