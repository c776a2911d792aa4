// Package ws pushes server notices to browsers over WebSocket.
//
// The channel is one-way: clients receive JSON notices and anything they
// send is discarded. Mount a Hub as an ordinary handler:
//
//	hub := ws.NewHub(&ws.Notice{Type: "hello"})
//	r.Get("/api/live", "live", hub.ServeHTTP)
//	hub.Publish(ws.Notice{Type: "pwa.installed", Data: state})
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 16
)

// Notice is one message pushed to every connected client.
type Notice struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and fans notices out to them.
type Hub struct {
	upgrader websocket.Upgrader
	welcome  []byte

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub returns a hub that greets each new client with welcome, if set.
func NewHub(welcome *Notice) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	if welcome != nil {
		h.welcome, _ = json.Marshal(welcome)
	}
	return h
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.WithCtx(r.Context()).Warn("ws: upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if h.welcome != nil {
		c.send <- h.welcome
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	metrics.LiveClients.Inc()
	total := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws: client connected", "total", total)

	go h.writePump(c)
	go h.readPump(c)
}

// Publish queues n for every client and returns how many received it.
// Clients whose buffer is full are dropped.
func (h *Hub) Publish(n Notice) int {
	msg, err := json.Marshal(n)
	if err != nil {
		logger.Error("ws: encode notice", "type", n.Type, "error", err)
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	sent := 0
	for c := range h.clients {
		select {
		case c.send <- msg:
			sent++
		default:
			h.drop(c)
		}
	}
	return sent
}

// Close disconnects every client. http.Server.Shutdown does not touch
// hijacked connections, so call this on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.drop(c)
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	metrics.LiveClients.Dec()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.drop(c)
		logger.Debug("ws: client disconnected", "total", len(h.clients))
	}
}

// readPump drains the connection so pongs and close frames are processed.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
