// Package events carries entity-changed notifications from the lifecycle
// engine to its observers. Views never read mutable shared state directly;
// they recompute on these events after the cache has been invalidated.
package events

import (
	"sync"

	"github.com/google/uuid"
)

type EventType string

const (
	RequestCreated  EventType = "request.created"
	RequestUpdated  EventType = "request.updated"
	RequestDeleted  EventType = "request.deleted"
	ProposalCreated EventType = "proposal.created"
	ProposalUpdated EventType = "proposal.updated"
	ProposalDeleted EventType = "proposal.deleted"
)

type Event struct {
	Type      EventType `json:"type"`
	ProjectID uuid.UUID `json:"project_id"`
	EntityID  uuid.UUID `json:"entity_id"`
}

// Hub fans events out to subscribers. Slow subscribers drop events rather
// than block a mutation's completion.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
