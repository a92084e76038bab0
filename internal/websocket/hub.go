package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"voting-service/internal/events"
)

var ErrHubStopped = errors.New("results hub stopped")

// Hub pushes every ledger event to the connected results subscribers.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Debug("Results subscriber registered", "clientID", client.id)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.fanOut(message)

		case <-h.ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.closeSend()
			}
			h.mu.Unlock()
			slog.Info("Results hub shutting down")
			return
		}
	}
}

func (h *Hub) fanOut(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow subscriber, drop it instead of stalling the hub
			delete(h.clients, client)
			client.closeSend()
			slog.Warn("Dropping slow results subscriber", "clientID", client.id)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
		slog.Debug("Results subscriber unregistered", "clientID", client.id)
	}
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues an event for every subscriber. It never blocks on slow clients.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	if h.ctx.Err() != nil {
		return ErrHubStopped
	}

	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the hub and disconnects every subscriber.
func (h *Hub) Close() error {
	h.cancel()
	<-h.done
	return nil
}
