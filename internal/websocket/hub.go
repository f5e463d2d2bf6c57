package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"go-file-manager/internal/event"
	"go-file-manager/internal/metrics"
)

// Hub fans store change events out to every connected change-feed client.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Event bus to listen for events
	bus event.Bus

	// Closed once Run returned.
	done chan struct{}
}

func NewHub(bus event.Bus) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		bus:        bus,
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	defer func() {
		for client := range h.clients {
			h.drop(client)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			metrics.WSClientConnected()
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		case e, ok := <-events:
			if !ok {
				return
			}

			message, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to marshal event", "type", e.Type, "error", err)
				continue
			}

			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					slog.Warn("dropping slow change-feed client", "remote", client.remote)
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	metrics.WSClientDisconnected()
}
