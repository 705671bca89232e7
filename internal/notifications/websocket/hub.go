package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"aqarshare/admin-portal/admin-portal-backend/internal/notifications"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Hub fans notification messages out to every connected admin client.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]bool
	broadcast   chan notifications.Message
	stop        chan struct{}
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

type connection struct {
	conn *websocket.Conn
	send chan notifications.Message
}

func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		connections: make(map[*connection]bool),
		broadcast:   make(chan notifications.Message, 256),
		stop:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
	go h.run()
	return h
}

// HandleConnection upgrades the request and starts the read/write pumps.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		conn: ws,
		send: make(chan notifications.Message, 64),
	}

	h.mu.Lock()
	h.connections[c] = true
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

// Broadcast queues a message for every connected client. A full queue drops
// the message rather than blocking the caller.
func (h *Hub) Broadcast(msg notifications.Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("notification broadcast queue full, dropping message",
			zap.String("title", msg.Title))
	}
}

// ConnectionCount returns the number of connected clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() {
	close(h.stop)
}

func (h *Hub) run() {
	for {
		select {
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.connections {
				select {
				case c.send <- msg:
				default:
					h.drop(c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for c := range h.connections {
				h.drop(c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(c *connection) {
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
		c.conn.Close()
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.mu.Lock()
		h.drop(c)
		h.mu.Unlock()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
