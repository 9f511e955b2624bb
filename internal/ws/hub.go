package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// Event is a live-feed message pushed to connected admin consoles.
type Event struct {
	Type      string      `json:"type"` // booking.created | booking.cancelled | booking.checked_in
	At        time.Time   `json:"at"`
	BookingID uint        `json:"booking_id,omitempty"`
	SessionID uint        `json:"session_id,omitempty"`
	UserID    uint        `json:"user_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// Client is a single admin console connection.
type Client struct {
	UserID uint
	Send   chan []byte
	hub    *FeedHub
	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// FeedHub maintains the set of connected admin consoles and broadcasts
// booking lifecycle events to them.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*Client]struct{})}
}

func (h *FeedHub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *FeedHub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Broadcast fans the event out; slow consumers are skipped rather than blocked on.
func (h *FeedHub) Broadcast(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	data, _ := json.Marshal(ev)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *FeedHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
