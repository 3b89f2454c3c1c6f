package websocket

import (
	"encoding/json"
	"sync"

	"github.com/marcp/critics-eye-backend/pkg/logger"
)

const (
	EventScoreUpdated = "score_updated"

	clientSendBuffer = 16
)

// ScoreEvent is broadcast to every client after a product's score is recomputed.
type ScoreEvent struct {
	Type         string  `json:"type"`
	ProductID    uint    `json:"product_id"`
	Score        float64 `json:"score"`
	ReviewsCount int64   `json:"reviews_count"`
}

// Client is one subscribed websocket connection
type Client struct {
	hub    *Hub
	conn   *Conn
	UserID uint
	send   chan []byte
}

// Hub owns the client set. Registration and broadcast are serialized
// through Run.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once

	mu    sync.RWMutex
	count int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":       client.UserID,
				"total_clients": len(h.clients),
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
					h.remove(client)
				}
			}

		case <-h.done:
			for client := range h.clients {
				h.remove(client)
			}
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.setCount(len(h.clients))
	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"user_id":           client.UserID,
		"remaining_clients": len(h.clients),
	})
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// Stop ends Run and closes every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// ClientCount reports the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// PublishScore queues a score_updated event. It never blocks; when the
// broadcast queue is full the event is dropped.
func (h *Hub) PublishScore(productID uint, score float64, reviewsCount int64) {
	data, err := json.Marshal(ScoreEvent{
		Type:         EventScoreUpdated,
		ProductID:    productID,
		Score:        score,
		ReviewsCount: reviewsCount,
	})
	if err != nil {
		logger.Error("Failed to marshal score event", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, score event dropped", map[string]interface{}{
			"product_id": productID,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
