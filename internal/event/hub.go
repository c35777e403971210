// Package event fans document-change notifications out to interested
// listeners, typically websocket connections held by the gateway.
package event

import (
	"sync"
	"time"
)

// Type classifies an event.
type Type string

const (
	// TypeDocumentChanged signals that a tool call mutated the document.
	TypeDocumentChanged Type = "document_changed"
	// TypeSessionClosed signals that a session was deleted.
	TypeSessionClosed Type = "session_closed"
)

// Event describes a single notification.
type Event struct {
	Type      Type      `json:"type"`
	SessionID string    `json:"sessionId"`
	Tool      string    `json:"tool,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub routes events to per-session subscribers. Slow subscribers drop
// events rather than stall publishers; listeners that care about exact
// state re-read it through the canvas state tool.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan Event
	next int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan Event)}
}

// Subscribe registers a listener for one session. The returned cancel
// function must be called to release the subscription; after cancel the
// channel is closed.
func (h *Hub) Subscribe(sessionID string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[int]chan Event)
	}
	h.subs[sessionID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if m, ok := h.subs[sessionID]; ok {
			if _, ok := m[id]; ok {
				delete(m, id)
				close(ch)
				if len(m) == 0 {
					delete(h.subs, sessionID)
				}
			}
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of its session. Delivery
// is non-blocking.
func (h *Hub) Publish(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers reports how many listeners a session has.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
