package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ordernest/internal/domain/entity"
	"ordernest/pkg/logger"
)

// Client represents one connected user
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections and fans order events out to the two
// parties of an order. Delivery is best effort; a slow client is dropped.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// orderEvent is the wire shape pushed on a status change
type orderEvent struct {
	Type      string             `json:"type"`
	OrderID   string             `json:"order_id"`
	FormID    string             `json:"form_id"`
	Status    entity.OrderStatus `json:"status"`
	Message   string             `json:"message,omitempty"`
	UpdateID  string             `json:"update_id"`
	CreatedAt time.Time          `json:"created_at"`
}

// NotifyOrderUpdate implements usecase.OrderEventNotifier.
func (m *Manager) NotifyOrderUpdate(order *entity.Order, update *entity.OrderUpdate) {
	event := orderEvent{
		Type:      "order_update",
		OrderID:   order.ID,
		FormID:    order.FormID,
		Status:    update.Status,
		Message:   update.Message,
		UpdateID:  update.ID,
		CreatedAt: update.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event: %v", err)
		return
	}

	m.SendToUser(order.CustomerID, payload)
	m.SendToUser(order.RetailerID, payload)
}

// SendToUser sends a message to a specific user if connected. The whole
// lookup-send-drop sequence holds the lock so concurrent senders cannot
// close the same channel twice or send on a closed one.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		// slow consumer, drop the connection
		delete(m.clients, userID)
		close(client.Send)
	}
}

// ReadPump drains the connection until it closes
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump sends queued messages to the connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
