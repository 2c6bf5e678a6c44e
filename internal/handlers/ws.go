package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bagoloot/bagoloot/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	clients   = make(map[*client]bool)
	clientsMu sync.RWMutex
)

// client serializes writes; a websocket.Conn supports one writer at a time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(v)
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type RefreshMessage struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       uint   `json:"id"`
}

// BroadcastRefresh tells every connected client that a row changed.
func BroadcastRefresh(resource, action string, id uint) {
	clientsMu.RLock()
	if len(clients) == 0 {
		clientsMu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing
	clientsCopy := make([]*client, 0, len(clients))
	for cl := range clients {
		clientsCopy = append(clientsCopy, cl)
	}
	clientsMu.RUnlock()

	msg := RefreshMessage{
		Type:     "refresh",
		Resource: resource,
		Action:   action,
		ID:       id,
	}

	for _, cl := range clientsCopy {
		if err := cl.writeJSON(msg); err != nil {
			slog.Warn("Failed to broadcast refresh to client", "error", err)
			removeClient(cl)
			cl.conn.Close()
		}
	}
}

func addClient(cl *client) {
	clientsMu.Lock()
	clients[cl] = true
	clientsMu.Unlock()
	metrics.WebSocketClients.Inc()
}

func removeClient(cl *client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	if _, ok := clients[cl]; ok {
		delete(clients, cl)
		metrics.WebSocketClients.Dec()
	}
}

// WebSocket returns the live-update endpoint. Connections whose Origin is
// not in allowedOrigins are refused.
func WebSocket(allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Warn("WebSocket upgrade failed", "error", err)
			return
		}

		conn.SetReadLimit(maxMessageSize)
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			slog.Warn("Failed to set initial read deadline", "error", err)
			conn.Close()
			return
		}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		cl := &client{conn: conn}

		// Registered before the welcome so that a client which has read the
		// welcome never misses a later broadcast.
		addClient(cl)

		defer func() {
			removeClient(cl)
			conn.Close()
			slog.Debug("WebSocket connection closed")
		}()

		err = cl.writeJSON(map[string]string{
			"type":    "connected",
			"message": "WebSocket connection established",
		})
		if err != nil {
			slog.Warn("Failed to send welcome message", "error", err)
			return
		}

		done := make(chan struct{})
		defer close(done)

		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()

			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
						return
					}
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Warn("WebSocket read error", "error", err)
				}
				break
			}
		}
	}
}
