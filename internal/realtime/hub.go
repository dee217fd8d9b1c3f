// Package realtime pushes events to browser sessions over WebSocket and
// routes the events they send back.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Outbound event names
const (
	EventNotification = "notification"
	EventConnectivity = "connectivity"
	EventMessage      = "message"
	EventAudioPlay    = "audio.play"
	EventAudioSuspend = "audio.suspend"
	EventSpeechSpeak  = "speech.speak"
	EventSpeechCancel = "speech.cancel"
	EventSpeechState  = "speech.state"
)

// Inbound event names
const (
	EventAudioEnded   = "audio.ended"
	EventSpeechEnded  = "speech.ended"
	EventSpeechError  = "speech.error"
	EventSpeechVoices = "speech.voices"
)

// Outgoing is the envelope written to clients
type Outgoing struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Incoming is the envelope read from clients
type Incoming struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Handler receives inbound events of a session
type Handler func(sessionID string, in Incoming)

type envelope struct {
	sessionID string // empty for broadcast
	data      []byte
}

// Hub tracks the connected clients of every session
type Hub struct {
	logger     *zap.Logger
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}

	mu       sync.RWMutex
	sessions map[string]map[*Client]bool
	handlers []Handler
}

// NewHub creates a hub; call Run to start it
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 256),
		done:       make(chan struct{}),
		sessions:   make(map[string]map[*Client]bool),
	}
}

// Handle registers a handler for inbound events
func (h *Hub) Handle(fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, fn)
}

// Run serves registrations and deliveries until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.sessions[c.sessionID] == nil {
				h.sessions[c.sessionID] = make(map[*Client]bool)
			}
			h.sessions[c.sessionID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case env := <-h.broadcast:
			h.mu.Lock()
			if env.sessionID == "" {
				for _, clients := range h.sessions {
					h.deliver(clients, env.data)
				}
			} else {
				h.deliver(h.sessions[env.sessionID], env.data)
			}
			h.mu.Unlock()
		}
	}
}

// deliver must be called with mu held
func (h *Hub) deliver(clients map[*Client]bool, data []byte) {
	for c := range clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping slow websocket client", zap.String("session_id", c.sessionID))
			h.remove(c)
		}
	}
}

// remove must be called with mu held
func (h *Hub) remove(c *Client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.sessions {
		for c := range clients {
			h.remove(c)
		}
	}
}

// Publish sends an event to every client of one session
func (h *Hub) Publish(sessionID, event string, payload any) {
	if sessionID == "" {
		return
	}
	h.enqueue(sessionID, event, payload)
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(event string, payload any) {
	h.enqueue("", event, payload)
}

func (h *Hub) enqueue(sessionID, event string, payload any) {
	data, err := json.Marshal(Outgoing{Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("Failed to marshal websocket event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- envelope{sessionID: sessionID, data: data}:
	default:
		h.logger.Warn("Websocket queue full, dropping event", zap.String("event", event))
	}
}

// Connected returns the number of clients attached to a session
func (h *Hub) Connected(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) dispatch(sessionID string, in Incoming) {
	h.mu.RLock()
	handlers := make([]Handler, len(h.handlers))
	copy(handlers, h.handlers)
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(sessionID, in)
	}
}
