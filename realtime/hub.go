// Package realtime pushes order events to restaurant owners over websockets.
package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"restaurant-admin/middleware"
	"restaurant-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventOrderCreated = "order.created"
	EventOrderStatus  = "order.status"
)

// Event is the JSON frame sent to subscribers
type Event struct {
	Type           string             `json:"type"`
	Order          *models.Order      `json:"order"`
	PreviousStatus models.OrderStatus `json:"previousStatus,omitempty"`
	At             time.Time          `json:"at"`
}

// writeWait bounds how long a stalled client can hold up Publish
const writeWait = 5 * time.Second

// Conn is the part of *websocket.Conn the hub writes to
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Hub tracks open connections per owner
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[Conn]bool // ownerID -> set of connections
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[Conn]bool)}
}

func (h *Hub) Subscribe(ownerID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[ownerID] == nil {
		h.clients[ownerID] = make(map[Conn]bool)
	}
	h.clients[ownerID][conn] = true
}

func (h *Hub) Unsubscribe(ownerID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ownerID][conn]; ok {
		delete(h.clients[ownerID], conn)
		conn.Close()
	}
	if len(h.clients[ownerID]) == 0 {
		delete(h.clients, ownerID)
	}
}

// Publish writes the event to every connection of the owner. Connections that
// fail to accept the write are dropped.
func (h *Hub) Publish(ownerID string, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[ownerID] {
		if d, ok := conn.(interface{ SetWriteDeadline(time.Time) error }); ok {
			_ = d.SetWriteDeadline(time.Now().Add(writeWait))
		}
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("ws write error: %v", err)
			conn.Close()
			delete(h.clients[ownerID], conn)
		}
	}
	if len(h.clients[ownerID]) == 0 {
		delete(h.clients, ownerID)
	}
}

// Connections reports how many sockets an owner has open
func (h *Hub) Connections(ownerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[ownerID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades an authenticated request and subscribes it to the
// caller's order events. WS route: /api/ws/orders
func (h *Hub) HandleWebSocket(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	h.Subscribe(session.UserID, conn)
	log.Printf("🔌 Owner %s connected from %v", session.UserID, conn.RemoteAddr())

	go h.drain(session.UserID, conn)
}

// drain discards inbound frames until the client goes away
func (h *Hub) drain(ownerID string, conn *websocket.Conn) {
	defer h.Unsubscribe(ownerID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}
	}
}
