package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

type Event string

const (
	EventState Event = "state"
	EventEnded Event = "ended"
)

// Message is fanned out to every client watching Channel.
type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

type Client struct {
	ID       string
	Outbound chan Message
	channels map[string]bool
}

// Hub tracks which clients watch which channels. A game session id is a channel, so a
// classroom screen and a student's device can follow the same session.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "realtime"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) NewClient(buffer int) *Client {
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		ID:       uuid.NewString(),
		Outbound: make(chan Message, buffer),
		channels: make(map[string]bool),
	}
}

func (h *Hub) Subscribe(c *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	c.channels[channel] = true
	clients, ok := h.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[c] = true
	h.log.Debug("client subscribed", "client_id", c.ID, "channel", channel)
}

func (h *Hub) Unsubscribe(c *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(c, strings.TrimSpace(channel))
}

// Remove drops every subscription of c and closes its Outbound channel.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.channels == nil {
		return
	}
	for ch := range c.channels {
		h.unsubscribeLocked(c, ch)
	}
	c.channels = nil
	close(c.Outbound)
}

func (h *Hub) unsubscribeLocked(c *Client, channel string) {
	delete(c.channels, channel)
	if subs, ok := h.subscriptions[channel]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

// Broadcast delivers msg to each watcher without blocking and returns how many received it.
// A watcher whose buffer is full misses the message.
func (h *Hub) Broadcast(msg Message) int {
	if msg.Channel == "" {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for c := range h.subscriptions[msg.Channel] {
		select {
		case c.Outbound <- msg:
			n++
			continue
		default:
		}
		if msg.Event == EventEnded && evictFor(c, msg) {
			n++
			continue
		}
		h.log.Warn("dropping realtime message; outbound buffer full", "client_id", c.ID, "channel", msg.Channel)
	}
	return n
}

// End tells every watcher of channel that it is gone. Unlike other events, the end event
// displaces the oldest buffered message when a watcher is behind.
func (h *Hub) End(channel string) int {
	return h.Broadcast(Message{Channel: channel, Event: EventEnded})
}

// evictFor drops queued messages until msg fits. Broadcasters share the read lock, so a slot
// freed here can be taken by another sender; give up after a few tries.
func evictFor(c *Client, msg Message) bool {
	for range 4 {
		select {
		case <-c.Outbound:
		default:
		}
		select {
		case c.Outbound <- msg:
			return true
		default:
		}
	}
	return false
}

func (h *Hub) Watchers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}
