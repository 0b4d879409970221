package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub fans broadcast messages out to connected clients. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	logger     *zap.Logger

	// done is closed when Run returns. mu orders Register against the
	// final drain of the register queue.
	done chan struct{}
	mu   sync.Mutex
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		count:      make(chan chan int),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.clients[client] = true
			h.logger.Debug("ws connected", zap.Int("total_clients", len(h.clients)))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debug("ws disconnected", zap.Int("total_clients", len(h.clients)))

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.logger.Debug("ws broadcast", zap.Int("clients", len(h.clients)))

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for {
		select {
		case client := <-h.register:
			if client != nil {
				close(client.send)
			}
		default:
			return
		}
	}
}

// Register adds client to the hub. Once the hub has stopped the client's
// send channel is closed instead, so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

// ClientCount asks the Run loop for the number of connected clients.
func (h *Hub) ClientCount(ctx context.Context) int {
	if h == nil {
		return 0
	}
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
	case <-h.done:
		return 0
	case <-ctx.Done():
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-ctx.Done():
		return 0
	}
}
