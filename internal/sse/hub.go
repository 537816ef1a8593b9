package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// Hub manages SSE clients for a single game
type Hub struct {
	gameID  model.GameID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("game_id", string(gameID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("sse client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", duration),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse messages dropped - client buffers full",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteByte('\n')
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// HubManager manages hubs for all games
type HubManager struct {
	hubs   map[model.GameID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.GameID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a game, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[gameID]; ok {
		return hub
	}

	hub := NewHub(gameID, m.logger)
	m.hubs[gameID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a game, or nil if none exists
func (m *HubManager) GetHub(gameID model.GameID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[gameID]
}

// CloseHub stops and removes the hub for a game
func (m *HubManager) CloseHub(gameID model.GameID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[gameID]; ok {
		hub.Close()
		delete(m.hubs, gameID)
	}
}

// CloseAll stops every hub
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for gameID, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, gameID)
	}
}
