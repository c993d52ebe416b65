package sse

import (
	"encoding/json"
	"sync"

	"github.com/kbukum/mapkit/logger"
)

const (
	clientBuffer    = 64
	broadcastBuffer = 256
)

// Client is one connected event stream.
type Client struct {
	id     string
	events chan Event
}

// NewClient creates a client with a buffered event channel.
func NewClient(id string) *Client {
	return &Client{id: id, events: make(chan Event, clientBuffer)}
}

// ID returns the client id.
func (c *Client) ID() string { return c.id }

// Events returns the channel the hub delivers to. It is closed when the
// client is unregistered or the hub stops.
func (c *Client) Events() <-chan Event { return c.events }

func (c *Client) send(e Event) bool {
	select {
	case c.events <- e:
		return true
	default:
		return false
	}
}

// Hub routes published events to registered clients. Registration happens
// under the hub lock, so a client is connected once Register returns.
type Hub struct {
	clients   map[string]*Client
	broadcast chan Event
	done      chan struct{}
	stopped   bool
	mu        sync.RWMutex
	log       *logger.Logger
}

var _ Publisher = (*Hub)(nil)

// NewHub creates a hub. Call Run to start delivering.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, broadcastBuffer),
		done:      make(chan struct{}),
		log:       log.WithComponent("sse"),
	}
}

// Run is the hub's delivery loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return
		case e := <-h.broadcast:
			h.deliver(e)
		}
	}
}

// Stop closes every client and makes Run return. Safe to call twice.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	close(h.done)
	for id, c := range h.clients {
		close(c.events)
		delete(h.clients, id)
	}
	h.log.Debug("All clients closed during shutdown")
}

// Done is closed once Stop has been called.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Register adds c. It returns false when the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return false
	}
	h.clients[c.id] = c
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Debug("Client registered", map[string]interface{}{"client_id": c.id, "total_clients": total})
	return true
}

// Unregister removes c and closes its channel. Unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.id)
	close(c.events)
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Debug("Client unregistered", map[string]interface{}{"client_id": c.id, "total_clients": total})
}

// Publish encodes payload and queues it for every client. It never blocks;
// when the queue is full the event is dropped.
func (h *Hub) Publish(eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("Event encode failed", map[string]interface{}{
			"event":           eventType,
			logger.FieldError: err.Error(),
		})
		return
	}
	select {
	case h.broadcast <- Event{Type: eventType, Data: data}:
	default:
		h.log.Warn("Broadcast queue full, dropping event", map[string]interface{}{"event": eventType})
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if !c.send(e) {
			h.log.Warn("Client channel full, dropping event", map[string]interface{}{
				"client_id": id,
				"event":     e.Type,
			})
		}
	}
}
